package plex

import (
	"errors"
	"fmt"
)

// ErrTokenRejected reports a 401 from the server: the host is reachable but
// the token is not recognized.
var ErrTokenRejected = errors.New("token rejected by server")

// ConnectionError represents a failure to talk to the Plex server, either
// because the host is unreachable or because a request came back with an
// unexpected status.
type ConnectionError struct {
	Operation  string // The request that failed, e.g. "GET /playlists"
	StatusCode int    // HTTP status code, 0 for transport-level failures
	Err        error  // Underlying error, if any
}

func (e *ConnectionError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("plex server error during %s (HTTP %d)", e.Operation, e.StatusCode)
	}

	return fmt.Sprintf("plex server unreachable during %s: %v", e.Operation, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
