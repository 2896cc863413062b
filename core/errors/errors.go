package errors

import "fmt"

type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"

	// Scan pipeline codes
	ErrFetchFailure        ErrorCode = "FETCH_FAILURE"
	ErrParseFailure        ErrorCode = "PARSE_FAILURE"
	ErrConfiguration       ErrorCode = "CONFIGURATION_ERROR"
	ErrStorageFailure      ErrorCode = "STORAGE_FAILURE"
	ErrNotificationFailure ErrorCode = "NOTIFICATION_FAILURE"
	ErrScanInProgress      ErrorCode = "SCAN_IN_PROGRESS"
)

// AppError carries an application error code alongside the message and the
// underlying cause, if any.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
