package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when an operation references a tasklist or task
// that is not currently held.
var ErrNotFound = errors.New("not found")

// ErrMalformedRecord is returned by record converters when a remote record
// lacks a required field. Loaders drop such records.
var ErrMalformedRecord = errors.New("malformed record")

// RemoteError represents a transport, auth or backend failure.
type RemoteError struct {
	Op         string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: backend error (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsUnauthorized returns true if the backend rejected the credentials.
func (e *RemoteError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound returns true if the backend reported a 404.
func (e *RemoteError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRemote checks if err is or wraps a *RemoteError and returns it.
func IsRemote(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}
