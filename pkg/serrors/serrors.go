package serrors

import (
	"errors"
	"fmt"
)

// Stable error codes shared between services and the HTTP layer. Codes are
// part of the API contract; messages are for humans and may change.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyDecided   = "ALREADY_DECIDED"
	CodeFieldRequired    = "FIELD_REQUIRED"
	CodeUnrecognized     = "UNRECOGNIZED"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL"
)

type Base struct {
	Code    string
	Message string
	Cause   error
}

func (e *Base) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Base) Unwrap() error {
	return e.Cause
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

func NewNotFoundError(entity string) *Base {
	return &Base{Code: CodeNotFound, Message: entity + " not found"}
}

func NewAlreadyDecidedError(entity string) *Base {
	return &Base{Code: CodeAlreadyDecided, Message: entity + " is already decided"}
}

func NewFieldRequiredError(field string) *Base {
	return &Base{Code: CodeFieldRequired, Message: "field is required: " + field}
}

func NewUnrecognizedError(message string) *Base {
	return &Base{Code: CodeUnrecognized, Message: message}
}

// WrapStore marks a failure coming back from the database as transient so
// callers can decide on retry policy. Typed failures pass through untouched.
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	var base *Base
	if errors.As(err, &base) {
		return err
	}
	return &Base{Code: CodeStoreUnavailable, Message: "store unavailable", Cause: err}
}

// Code extracts the stable code from err, falling back to INTERNAL.
func Code(err error) string {
	var base *Base
	if errors.As(err, &base) {
		return base.Code
	}
	return CodeInternal
}

func HasCode(err error, code string) bool {
	return Code(err) == code
}
