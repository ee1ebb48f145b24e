package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMean(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"single score", []int{42}, 42},
		{"three scores", []int{10, 20, 30}, 20},
		{"fractional mean", []int{1, 2}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, err := Group{Importance: 1, Scores: tt.scores}.Mean()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, mean, 1e-12)
		})
	}

	t.Run("empty scores", func(t *testing.T) {
		_, err := Group{Importance: 1}.Mean()
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestGroupValidate(t *testing.T) {
	tests := []struct {
		name    string
		group   Group
		wantErr string
	}{
		{"valid", Group{Importance: 2, Scores: []int{1}}, ""},
		{"zero importance", Group{Importance: 0, Scores: []int{1}}, "groups[3].importance=0: must be greater than zero"},
		{"negative importance", Group{Importance: -1, Scores: []int{1}}, "must be greater than zero"},
		{"NaN importance", Group{Importance: math.NaN(), Scores: []int{1}}, "must be finite"},
		{"infinite importance", Group{Importance: math.Inf(1), Scores: []int{1}}, "must be finite"},
		{"empty scores", Group{Importance: 1}, "groups[3].scores=0: must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.group.Validate(3)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
