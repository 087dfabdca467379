package plex

// APIResponse wraps the MediaContainer envelope every JSON endpoint returns.
type APIResponse struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}

// MediaContainer is the root container for Plex API responses.
type MediaContainer struct {
	Size     int        `json:"size"`
	Title    string     `json:"title1,omitempty"`
	Metadata []Metadata `json:"Metadata,omitempty"`
}

// Metadata represents either a playlist (from /playlists) or one of its
// items (from /playlists/{key}/items), depending on the endpoint.
type Metadata struct {
	RatingKey             string  `json:"ratingKey"`
	Key                   string  `json:"key"`
	GUID                  string  `json:"guid,omitempty"`
	Type                  string  `json:"type"`
	Title                 string  `json:"title"`
	TitleSort             string  `json:"titleSort,omitempty"`
	GrandparentTitle      string  `json:"grandparentTitle,omitempty"`
	ParentTitle           string  `json:"parentTitle,omitempty"`
	Summary               string  `json:"summary,omitempty"`
	Index                 int     `json:"index,omitempty"`
	ParentIndex           int     `json:"parentIndex,omitempty"`
	Year                  int     `json:"year,omitempty"`
	Duration              int     `json:"duration,omitempty"`
	OriginallyAvailableAt string  `json:"originallyAvailableAt,omitempty"`
	AddedAt               int64   `json:"addedAt,omitempty"`
	UpdatedAt             int64   `json:"updatedAt,omitempty"`
	Rating                float64 `json:"rating,omitempty"`
	ViewCount             int     `json:"viewCount,omitempty"`

	// Playlist-only fields.
	PlaylistType string `json:"playlistType,omitempty"`
	Smart        bool   `json:"smart,omitempty"`
	LeafCount    int    `json:"leafCount,omitempty"`

	Media []Media `json:"Media,omitempty"`
}

// Media represents one media version of an item.
type Media struct {
	ID        int    `json:"id"`
	Duration  int    `json:"duration,omitempty"`
	Bitrate   int    `json:"bitrate,omitempty"`
	Container string `json:"container,omitempty"`
	Part      []Part `json:"Part,omitempty"`
}

// Part represents a physical media file behind a Media entry. Key is the
// server path the file is streamed from.
type Part struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Duration  int    `json:"duration,omitempty"`
	File      string `json:"file,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Container string `json:"container,omitempty"`
}
