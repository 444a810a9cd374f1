package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/wedlink-admin/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response. Message is the backend's "message" (or
// "error") field when the body carries one.
type APIError struct {
	Status  int
	Message string
	err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

// Unwrap exposes the sentinel matching the status: ErrUnauthorized (401),
// common.ErrorNotFound (404) or common.ErrConflict (409).
func (e *APIError) Unwrap() error {
	return e.err
}

func newAPIError(status int, message string) *APIError {
	e := &APIError{Status: status, Message: message}
	switch status {
	case http.StatusUnauthorized:
		e.err = ErrUnauthorized
	case http.StatusNotFound:
		e.err = common.ErrorNotFound
	case http.StatusConflict:
		e.err = common.ErrConflict
	}
	return e
}

// Message returns the backend message carried by err, or "".
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
