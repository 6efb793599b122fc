package api

import (
	"fmt"
	"net/http"
)

// TransportError is returned for every failed round-trip, whether the
// request never completed or the service answered with a non-2xx status.
type TransportError struct {
	Op      string // list, create, update, delete, login
	Status  int    // 0 when no response was received
	Message string // "error" field of the response body, if any
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("api: %s: status %d: %s", e.Op, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("api: %s: status %d %s", e.Op, e.Status, http.StatusText(e.Status))
	default:
		return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether the service rejected the credential
func (e *TransportError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}
