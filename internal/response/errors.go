package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Kind names an error class; it doubles as the envelope error title.
type Kind string

const (
	InputError        Kind = "InputError"
	QueryError        Kind = "QueryError"
	InvalidRequest    Kind = "InvalidRequest"
	ValidationError   Kind = "ValidationError"
	ValidatorError    Kind = "ValidatorError"
	CastError         Kind = "CastError"
	SyntaxError       Kind = "SyntaxError"
	IncorrectField    Kind = "IncorrectField"
	Unauthorized      Kind = "Unauthorized"
	Forbidden         Kind = "Forbidden"
	NotFound          Kind = "NotFound"
	InsufficientStock Kind = "InsufficientStock"
	Conflict          Kind = "Conflict"
	StorageError      Kind = "StorageError"
)

var statusByKind = map[Kind]int{
	InputError:        http.StatusBadRequest,
	QueryError:        http.StatusBadRequest,
	InvalidRequest:    http.StatusBadRequest,
	ValidationError:   http.StatusBadRequest,
	ValidatorError:    http.StatusBadRequest,
	CastError:         http.StatusBadRequest,
	SyntaxError:       http.StatusBadRequest,
	IncorrectField:    http.StatusBadRequest,
	Unauthorized:      http.StatusUnauthorized,
	Forbidden:         http.StatusForbidden,
	NotFound:          http.StatusNotFound,
	InsufficientStock: http.StatusNotFound,
	Conflict:          http.StatusConflict,
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps an underlying persistence failure.
func Storage(op string, err error) *Error {
	return &Error{Kind: StorageError, Message: op, Err: err}
}

// KindOf returns the kind of err, or "" when err is unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode maps err to an HTTP status; unclassified errors are 500.
func StatusCode(err error) int {
	if status, ok := statusByKind[KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromDecode classifies a JSON decoding failure of a request body.
func FromDecode(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return &Error{Kind: SyntaxError, Message: "Request body is not valid JSON.", Err: err}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &Error{Kind: CastError, Message: fmt.Sprintf("Invalid value for field '%s'.", field), Err: err}
	default:
		return &Error{Kind: InputError, Message: "Request body could not be decoded.", Err: err}
	}
}
