package playlist

import (
	"context"
	"fmt"

	"github.com/plexdl/plexdl/internal/logctx"
)

// Resolver answers playlist queries against a media-server client. It holds
// no state between calls; every query reflects the server at query time.
type Resolver struct {
	svc Service
}

func NewResolver(svc Service) *Resolver {
	return &Resolver{svc: svc}
}

// List returns all playlists, filtered by type when typeFilter is non-empty.
// An empty result is not an error.
func (r *Resolver) List(ctx context.Context, typeFilter string) ([]Summary, error) {
	summaries, err := r.svc.Playlists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	if typeFilter == "" {
		return summaries, nil
	}

	filtered := make([]Summary, 0, len(summaries))

	for _, s := range summaries {
		if s.Type == typeFilter {
			filtered = append(filtered, s)
		}
	}

	return filtered, nil
}

// Resolve matches exactly one playlist by title (case-sensitive) within the
// filtered set and fetches its items in server order. Zero matches yield a
// NotFoundError; several matches yield an AmbiguousMatchError.
func (r *Resolver) Resolve(ctx context.Context, name, typeFilter string) (*Playlist, error) {
	logger := logctx.LoggerFromContext(ctx).With("playlist", name)

	summaries, err := r.List(ctx, typeFilter)
	if err != nil {
		return nil, err
	}

	var matches []Summary

	for _, s := range summaries {
		if s.Title == name {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Name: name, Type: typeFilter}
	case 1:
	default:
		return nil, &AmbiguousMatchError{Name: name, Count: len(matches)}
	}

	match := matches[0]

	logger.DebugContext(ctx, "playlist matched", "rating_key", match.RatingKey, "type", match.Type)

	items, err := r.svc.PlaylistItems(ctx, match.RatingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
	}

	logger.DebugContext(ctx, "playlist items fetched", "item_count", len(items))

	return &Playlist{Summary: match, Items: items}, nil
}
