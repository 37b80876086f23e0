package booking

import (
	"errors"
	"fmt"
)

// Error codes for the booking engine. MissingParameters and RoomNotFound are
// user-correctable; Unavailable is a normal outcome handled by recommendation
// generation; StoreUnavailable is the only transient failure.
const (
	CodeMissingParameters = "missingParameters"
	CodeRoomNotFound      = "roomNotFound"
	CodeUnavailable       = "unavailable"
	CodeStoreUnavailable  = "storeUnavailable"
	CodeNotFound          = "bookingNotFound"
)

// BookingError is the typed error surfaced by the booking engine.
type BookingError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func NewBookingError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}

// NewStoreError wraps a calendar store I/O failure.
func NewStoreError(op string, err error) error {
	return &BookingError{
		Code:    CodeStoreUnavailable,
		Message: fmt.Sprintf("calendar store %s failed", op),
		Err:     err,
	}
}

// ErrorCode extracts the booking error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
