package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError classifies err into an HTTP status and a stable code.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, practice.ErrUnknownCharacter):
		return New(http.StatusBadRequest, "unknown_character", err)
	case errors.Is(err, practice.ErrInvalidSize):
		return New(http.StatusBadRequest, "invalid_size", err)
	case errors.Is(err, practice.ErrEmptySyllabus):
		return New(http.StatusBadRequest, "empty_syllabus", err)
	case errors.Is(err, practice.ErrInvalidPolicy):
		return New(http.StatusInternalServerError, "invalid_policy", err)
	case errors.Is(err, practice.ErrMalformedRecord):
		return New(http.StatusInternalServerError, "malformed_record", err)
	default:
		return New(http.StatusInternalServerError, "internal", err)
	}
}
