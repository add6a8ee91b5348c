package service

import "errors"

// Closed set of authentication failure kinds. Everything the sign-in path
// can produce maps onto one of these before it reaches a handler.
var (
	ErrValidation         = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many login attempts")
)

// User-facing messages. The invalid-credentials message never reveals
// whether the email exists; the rate-limit message reveals that a block
// occurred but not whether the credentials were correct.
const (
	MsgValidation         = "Email and password are required."
	MsgInvalidCredentials = "Invalid email or password. Please try again."
	MsgRateLimited        = "Too many login attempts. Please try again later."
	MsgInternal           = "An authentication error occurred. Please try again."
)

// UserMessage maps an authentication error to the single message shown to
// the caller.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return MsgValidation
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrRateLimited):
		return MsgRateLimited
	default:
		return MsgInternal
	}
}
