package client

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a non-2xx HTTP response from the API.
// Message is the server's message field, empty when the body carried none.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Error is the failure returned by every API call. Message is safe to show
// to the user.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

const sessionExpiredMessage = "your session has expired, run hm login"

// wrap builds the user-facing error for op. The server's message wins over
// fallback when one was sent.
func wrap(op, fallback string, err error) error {
	msg := fallback
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.Message != "":
			msg = httpErr.Message
		case httpErr.StatusCode == http.StatusUnauthorized:
			msg = sessionExpiredMessage
		}
	}
	return &Error{Op: op, Message: msg, Err: err}
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
