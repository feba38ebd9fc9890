package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFieldValidationError(t *testing.T) {
	err := NewFieldValidationError("vehicle_id", "vehicle does not belong to the client")

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []string{"vehicle does not belong to the client"}, err.Fields["vehicle_id"])
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
}

func TestNewFieldsValidationError_Empty(t *testing.T) {
	assert.Nil(t, NewFieldsValidationError(nil))
}

func TestInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("cannot start a completed service")

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.True(t, IsInvalidTransitionError(err))
	assert.False(t, IsValidationError(err))
}

func TestAppError_ErrorString(t *testing.T) {
	err := NewValidationError("invalid").WithField("quantity", "must be at least 1")
	assert.Equal(t, "validation_error: invalid [quantity: must be at least 1]", err.Error())
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"mysql", stderrors.New("Error 1062: Duplicate entry 'OS202401-1234' for key 'uk_service_number'"), true},
		{"sqlite", stderrors.New("UNIQUE constraint failed: services.service_number"), true},
		{"other", stderrors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
