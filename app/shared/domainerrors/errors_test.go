package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesClass(t *testing.T) {
	err := fmt.Errorf("submit: %w", Required("discord"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "submit: invalid discord: is required")

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "discord", ve.Field)
}

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", Invalid("level", "must be positive"), true},
		{"not found", fmt.Errorf("party: %w", ErrNotFound), true},
		{"conflict", fmt.Errorf("capacity: %w", ErrConflict), true},
		{"store", fmt.Errorf("%w: connection refused", ErrStore), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDomain(tt.err))
		})
	}
}
