package playlist

import "context"

// Summary describes a playlist as reported by the server listing, before
// its items are fetched.
type Summary struct {
	RatingKey string
	Title     string
	Type      string
	ItemCount int
}

// Item references a single media file on the server. Metadata carries the
// fields the server reported for the item; absence of a field is an absent
// map key, never an empty sentinel value.
type Item struct {
	Title    string
	PartKey  string
	FilePath string
	Size     int64
	Metadata map[string]string
}

// Field returns the named metadata field and whether the item carries it.
func (i Item) Field(name string) (string, bool) {
	v, ok := i.Metadata[name]

	return v, ok
}

// Playlist is a resolved playlist. Items appear in the order the server
// returned them.
type Playlist struct {
	Summary
	Items []Item
}

// Service is the slice of the media-server client the resolver consumes.
type Service interface {
	Playlists(ctx context.Context) ([]Summary, error)
	PlaylistItems(ctx context.Context, ratingKey string) ([]Item, error)
}
