package services

import (
	"errors"
	"fmt"

	"rikky/internal/repositories"
)

// ErrorKind classifies a DomainError for the transport layer.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
)

// DomainError is a business rule failure whose message is safe to show to clients.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(kind ErrorKind, format string, args ...any) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong
// password alike.
var ErrInvalidCredentials = NewDomainError(KindUnauthorized, "invalid username or password")

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// fromRepository turns the repository sentinels into domain errors and
// passes any other error through unchanged.
func fromRepository(err error, format string, args ...any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return NewDomainError(KindNotFound, format, args...)
	default:
		return err
	}
}
