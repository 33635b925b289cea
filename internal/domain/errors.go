package domain

import "errors"

// Kind classifies an error for the HTTP boundary
type Kind int

const (
	KindValidation   Kind = iota + 1 // Malformed input
	KindConflict                     // Duplicate username or email
	KindUnauthorized                 // Bad credentials or bad token
	KindNotFound                     // Row vanished
	KindServer                       // Store or connectivity failure
)

// Error is the error type returned by the services
type Error struct {
	Kind    Kind   // Error class
	Message string // Client-facing message
	Err     error  // Underlying cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrUsernameExists     = &Error{Kind: KindConflict, Message: "Username already exists"}
	ErrEmailExists        = &Error{Kind: KindConflict, Message: "Email already exists"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrInvalidToken       = &Error{Kind: KindUnauthorized, Message: "Not authorized"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
)

// Validation returns a ValidationError with the given message
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Server wraps a store failure as a ServerError
func Server(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

// KindOf returns the kind of err, KindServer for anything unclassified
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}
