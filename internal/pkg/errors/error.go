package xerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common reusable application errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownIdentity    = errors.New("identity no longer exists")
	ErrStoreUnavailable   = errors.New("session store unavailable")
	ErrRateLimited        = errors.New("too many requests")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)

// DefaultMessage is rendered whenever an error carries no explicit
// user-facing message. Internal error strings must never reach the page
// through this path.
const DefaultMessage = "Something went wrong"

// E is an error with an HTTP status and a message that is safe to show
// to the user. Handlers raise it; the terminal error middleware renders it.
type E struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

// New builds a user-visible error with an explicit status and message.
func New(statusCode int, message string) *E {
	return &E{StatusCode: statusCode, Message: message}
}

// WrapStatus attaches a status and user-facing message to an internal error.
func WrapStatus(err error, statusCode int, message string) *E {
	return &E{StatusCode: statusCode, Message: message, Err: err}
}

// StatusOf extracts the HTTP status from an error chain, defaulting to 500.
func StatusOf(err error) int {
	var e *E
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the user-facing message from an error chain. Errors
// without an explicit message get the generic default.
func MessageOf(err error) string {
	var e *E
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return DefaultMessage
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
