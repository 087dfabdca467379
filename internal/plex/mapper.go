package plex

import (
	"strconv"

	"github.com/plexdl/plexdl/internal/playlist"
)

func mapSummaries(metadata []Metadata) []playlist.Summary {
	summaries := make([]playlist.Summary, 0, len(metadata))

	for _, md := range metadata {
		summaries = append(summaries, playlist.Summary{
			RatingKey: md.RatingKey,
			Title:     md.Title,
			Type:      md.PlaylistType,
			ItemCount: md.LeafCount,
		})
	}

	return summaries
}

// mapItem converts an item Metadata entry to the domain Item. It reports
// false when the entry has no media part to download.
func mapItem(md Metadata) (playlist.Item, bool) {
	if len(md.Media) == 0 || len(md.Media[0].Part) == 0 {
		return playlist.Item{}, false
	}

	part := md.Media[0].Part[0]

	return playlist.Item{
		Title:    md.Title,
		PartKey:  part.Key,
		FilePath: part.File,
		Size:     part.Size,
		Metadata: mapFields(md),
	}, true
}

// mapFields flattens the metadata the server reported into the field map
// used for --order-by lookups. Only fields the server actually sent are
// present; zero values stay absent so missing fields are detectable.
func mapFields(md Metadata) map[string]string {
	fields := make(map[string]string)

	setString := func(name, v string) {
		if v != "" {
			fields[name] = v
		}
	}

	setInt := func(name string, v int64) {
		if v != 0 {
			fields[name] = strconv.FormatInt(v, 10)
		}
	}

	setString("ratingKey", md.RatingKey)
	setString("title", md.Title)
	setString("titleSort", md.TitleSort)
	setString("grandparentTitle", md.GrandparentTitle)
	setString("parentTitle", md.ParentTitle)
	setString("type", md.Type)
	setString("originallyAvailableAt", md.OriginallyAvailableAt)

	setInt("index", int64(md.Index))
	setInt("parentIndex", int64(md.ParentIndex))
	setInt("year", int64(md.Year))
	setInt("duration", int64(md.Duration))
	setInt("addedAt", md.AddedAt)
	setInt("updatedAt", md.UpdatedAt)
	setInt("viewCount", int64(md.ViewCount))

	if md.Rating != 0 {
		fields["rating"] = strconv.FormatFloat(md.Rating, 'f', -1, 64)
	}

	return fields
}
