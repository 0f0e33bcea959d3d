package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to validation and lookups
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Cache Pipeline Errors - errors raised inside the caching pipeline
	ErrorTypeSerialization
	ErrorTypeDeserialization
	ErrorTypeStoreUnavailable

	// System/Configuration Errors - errors related to system setup and wiring
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeSerialization:
		return "SERIALIZATION_ERROR"
	case ErrorTypeDeserialization:
		return "DESERIALIZATION_ERROR"
	case ErrorTypeStoreUnavailable:
		return "STORE_UNAVAILABLE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

// Cache Pipeline Error Constructors
func NewSerializationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeSerialization, message, cause)
}

func NewDeserializationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDeserialization, message, cause)
}

func NewStoreUnavailableError(message string, cause error) *AppError {
	return Wrap(ErrorTypeStoreUnavailable, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// GetType extracts the error type from an error, returning ErrorTypeUnknown
// for errors that are not AppErrors
func GetType(err error) ErrorType {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, errorType ErrorType) bool {
	return GetType(err) == errorType
}
