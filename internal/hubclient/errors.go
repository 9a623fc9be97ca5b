package hubclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("capstone hub backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("capstone hub request timed out")

	// ErrUnauthorized indicates a 401 or 403 response.
	ErrUnauthorized = errors.New("admin access required")

	// ErrValidation indicates the server rejected the payload (400 or 422).
	ErrValidation = errors.New("request rejected by server validation")

	// ErrNotFound indicates a 404 response.
	ErrNotFound = errors.New("record not found")

	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("capstone hub server error")

	// ErrUnexpectedStatus covers any other non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidResponse indicates a 2xx response whose body could not be
	// decoded into the expected shape.
	ErrInvalidResponse = errors.New("malformed server response")
)

// StatusError carries the HTTP status and the server's message for a
// non-2xx response. It unwraps to one of the sentinel errors above.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

func (e *StatusError) Unwrap() error {
	return kindForStatus(e.Code)
}

func kindForStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return ErrValidation
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a server response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// ServerMessage extracts the server-provided message from err, if any.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrServer):
		return "SERVER"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}
