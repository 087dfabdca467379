package playlist

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no playlist matched the requested name and type.
var ErrNotFound = errors.New("playlist not found")

// NotFoundError carries the name and type filter that produced no match.
type NotFoundError struct {
	Name string // Requested playlist name
	Type string // Type filter in effect, empty when unfiltered
}

func (e *NotFoundError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("no %s playlist named %q", e.Type, e.Name)
	}

	return fmt.Sprintf("no playlist named %q", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AmbiguousMatchError reports that more than one playlist carries the
// requested name. The server does not enforce name uniqueness; downloading
// an arbitrary one of several same-named playlists would be silent data
// corruption, so resolution fails instead.
type AmbiguousMatchError struct {
	Name  string // Requested playlist name
	Count int    // Number of playlists matching it
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%d playlists named %q; rename them on the server to disambiguate", e.Count, e.Name)
}
