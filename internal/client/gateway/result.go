package gateway

import (
	"fmt"

	"jobportal-service/internal/domain/user"
)

// Kind separates failures that came with a response from those that did not.
type Kind int

const (
	// KindRequest is a non-2xx response from the server.
	KindRequest Kind = iota + 1
	// KindTransport means no response was received.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// AuthError is the only failure shape that leaves the gateway.
type AuthError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Result carries either a value or an AuthError, never both.
type Result[T any] struct {
	Value T
	Err   *AuthError
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fail[T any](err *AuthError) Result[T] {
	return Result[T]{Err: err}
}

// Payload is the normalized success body of the auth endpoints.
type Payload struct {
	User    *user.User
	Message string
	Token   string
}
