package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentError(t *testing.T) {
	tests := []struct {
		name     string
		argument string
		value    any
		reason   string
		wantMsg  string
	}{
		{
			name:     "count rejected",
			argument: "count",
			value:    0,
			reason:   "must be positive",
			wantMsg:  "invalid argument: count=0: must be positive",
		},
		{
			name:     "indexed importance rejected",
			argument: "groups[1].importance",
			value:    -2.5,
			reason:   "must be greater than zero",
			wantMsg:  "invalid argument: groups[1].importance=-2.5: must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewArgumentError(tt.argument, tt.value, tt.reason)

			assert.Equal(t, tt.wantMsg, err.Error(), "Error message mismatch")
			assert.Equal(t, tt.argument, err.Argument, "Argument mismatch")
			assert.True(t, errors.Is(err, ErrInvalidArgument), "Should unwrap to ErrInvalidArgument")

			wrapped := fmt.Errorf("aggregation failed: %w", err)
			assert.ErrorIs(t, wrapped, ErrInvalidArgument)

			var argErr *ArgumentError
			assert.ErrorAs(t, wrapped, &argErr)
			assert.Equal(t, tt.value, argErr.Value)
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := NewValidationError("Scenario")
		err.AddError("missing name")

		assert.Equal(t, "validation error for Scenario: missing name", err.Error())
		assert.True(t, err.HasErrors(), "Should have errors")
		assert.Len(t, err.Errors, 1, "Should have one error")
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := NewValidationError("Scenario")
		err.AddError("duplicate department")
		err.AddError("empty range")

		assert.Equal(t, "validation errors for Scenario: [duplicate department empty range]", err.Error())
		assert.Len(t, err.Errors, 2)
	})

	t.Run("no errors", func(t *testing.T) {
		err := NewValidationError("Scenario")
		assert.False(t, err.HasErrors())
	})

	t.Run("classified as invalid argument", func(t *testing.T) {
		err := NewValidationError("Scenario")
		err.AddError("bad")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
