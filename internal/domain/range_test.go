package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	t.Run("default range", func(t *testing.T) {
		assert.Equal(t, 0, DefaultRange.Low)
		assert.Equal(t, 90, DefaultRange.High)
		require.NoError(t, DefaultRange.Validate())
		assert.Equal(t, "[0, 90)", DefaultRange.String())
	})

	t.Run("contains is half open", func(t *testing.T) {
		assert.True(t, DefaultRange.Contains(0))
		assert.True(t, DefaultRange.Contains(89))
		assert.False(t, DefaultRange.Contains(90))
		assert.False(t, DefaultRange.Contains(-1))
	})

	t.Run("clamp is closed", func(t *testing.T) {
		tests := []struct {
			name string
			in   float64
			want float64
		}{
			{"below floor", -3.5, 0},
			{"at floor", 0, 0},
			{"inside", 42.25, 42.25},
			{"at ceiling", 90, 90},
			{"above ceiling", 100, 90},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, DefaultRange.Clamp(tt.in))
			})
		}
	})

	t.Run("degenerate ranges are rejected", func(t *testing.T) {
		for _, r := range []Range{{Low: 5, High: 5}, {Low: 10, High: 2}} {
			err := r.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		}
	})
}
