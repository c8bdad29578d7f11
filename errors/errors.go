package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure carried by an AppError
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail    ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidPhone    ErrorCode = "INVALID_PHONE"

	// Reservation errors
	ErrCodeRoomNotAvailable  ErrorCode = "ROOM_NOT_AVAILABLE"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeInvalidDateRange  ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeCapacityExceeded  ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeCancelWindow      ErrorCode = "CANCELLATION_WINDOW_CLOSED"

	// Payment errors
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidMethod ErrorCode = "INVALID_PAYMENT_METHOD"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Business errors
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
)

// AppError is a domain error with a human readable message
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is, or wraps, an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError extracts the AppError from err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries an AppError with the given code
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnauthorized      = errors.New("unauthorized")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")

	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAvailable = errors.New("room not available for these dates")

	// Service errors
	ErrServiceNotFound = errors.New("service not found")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidAmount   = errors.New("invalid amount")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)

// Is forwards to the standard library so callers importing this package keep errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As forwards to the standard library
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New forwards to the standard library
func New(text string) error {
	return errors.New(text)
}
