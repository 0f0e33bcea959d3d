package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "WithoutCause",
			err:      NewValidationError("cache key cannot be empty"),
			expected: "VALIDATION_ERROR: cache key cannot be empty",
		},
		{
			name:     "WithCause",
			err:      NewStoreUnavailableError("redis get operation failed", errors.New("connection refused")),
			expected: "STORE_UNAVAILABLE_ERROR: redis get operation failed (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("malformed envelope")
	err := NewDeserializationError("failed to decode cached entry", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "SERIALIZATION_ERROR", ErrorTypeSerialization.String())
	assert.Equal(t, "DESERIALIZATION_ERROR", ErrorTypeDeserialization.String())
	assert.Equal(t, "STORE_UNAVAILABLE_ERROR", ErrorTypeStoreUnavailable.String())
	assert.Equal(t, "CONFIGURATION_ERROR", ErrorTypeConfiguration.String())
	assert.Equal(t, "UNKNOWN_ERROR", ErrorType(99).String())
}

func TestGetType(t *testing.T) {
	assert.Equal(t, ErrorTypeNotFound, GetType(NewNotFoundError("cache miss")))
	assert.Equal(t, ErrorTypeUnknown, GetType(errors.New("plain error")))
	assert.Equal(t, ErrorTypeUnknown, GetType(nil))
}

func TestIsType(t *testing.T) {
	err := NewConfigurationError("backing provider is not wired", nil)

	assert.True(t, IsType(err, ErrorTypeConfiguration))
	assert.False(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(errors.New("plain error"), ErrorTypeConfiguration))
}
