package items

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed item operation.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindNotFound
	KindStorage
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate item")
	ErrNotFound   = errors.New("item not found")
	ErrStorage    = errors.New("storage failure")
)

const (
	msgCreateRequired = "Both name and price are required"
	msgUpdateRequired = "Either name or price is required"
	msgDuplicate      = "That item has already been added"
	msgReadFailed     = "Couldn't read database"
	msgWriteFailed    = "Couldn't write to database"
)

// Error is the single error type returned by Service. Message is safe to show
// to clients; Err keeps the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrDuplicate:
		return e.Kind == KindDuplicate
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrStorage:
		return e.Kind == KindStorage
	}
	return false
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	if e.Kind == KindStorage {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// NewValidationError builds a client error for missing or malformed input.
func NewValidationError(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

func duplicateError(name string) *Error {
	return &Error{Kind: KindDuplicate, Message: msgDuplicate, Err: fmt.Errorf("name %q is taken", name)}
}

func notFoundError(name string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s was not found in items", name)}
}

func storageError(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: cause}
}
