package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAuthFailure       = errors.New("invalid username or password")
	ErrUnauthenticated   = errors.New("not logged in")
	ErrStaleResponse     = errors.New("response discarded: session changed")
	ErrNotPersisted      = errors.New("change kept in memory only")
)

// NetworkError reports a transport failure talking to the payment service.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError reports a non-2xx response from the payment service. Message is
// the body's "message" field, or the HTTP status text when the body has none.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Reason returns the short human-readable text surfaced to the user for err.
func Reason(err error) string {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Err.Error()
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
