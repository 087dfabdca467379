package downloader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/plexdl/plexdl/internal/playlist"
)

// Entry pairs an item with the local filename it will be written to.
type Entry struct {
	Item     playlist.Item
	Filename string
}

// Plan is the ordered set of downloads for one run. It is derived fresh from
// a playlist's items and never persisted.
type Plan struct {
	Entries []Entry
}

type PlanOptions struct {
	// OrderBy names the metadata field to sort by. Empty keeps server order.
	OrderBy string
	// OriginalNames keeps the server-side filename instead of the
	// index-prefixed one.
	OriginalNames bool
}

// BuildPlan orders the items and assigns each a target filename. The
// ordering is total: server order, or a stable ascending sort on OrderBy
// with server-order ties. Index-prefixed filenames are zero-padded so that
// lexicographic and plan order coincide.
func BuildPlan(items []playlist.Item, opts PlanOptions) (*Plan, error) {
	ordered := make([]playlist.Item, len(items))
	copy(ordered, items)

	if opts.OrderBy != "" {
		for _, item := range ordered {
			if _, ok := item.Field(opts.OrderBy); !ok {
				return nil, &MissingSortFieldError{ItemTitle: item.Title, Field: opts.OrderBy}
			}
		}

		sort.SliceStable(ordered, func(i, j int) bool {
			a, _ := ordered[i].Field(opts.OrderBy)
			b, _ := ordered[j].Field(opts.OrderBy)

			return compareValues(a, b) < 0
		})
	}

	entries := make([]Entry, 0, len(ordered))

	if opts.OriginalNames {
		taken := make(map[string]bool, len(ordered))

		for _, item := range ordered {
			entries = append(entries, Entry{Item: item, Filename: originalName(item, taken)})
		}
	} else {
		width := indexWidth(len(ordered))

		for i, item := range ordered {
			name := fmt.Sprintf("%0*d%s", width, i+1, filepath.Ext(item.FilePath))
			entries = append(entries, Entry{Item: item, Filename: name})
		}
	}

	return &Plan{Entries: entries}, nil
}

// compareValues orders two metadata values: numerically when both parse as
// numbers (year, addedAt, index), lexicographically otherwise (titleSort,
// originallyAvailableAt -- ISO dates sort correctly as strings).
func compareValues(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)

	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a, b)
}

// indexWidth is the digit count of the item count, with a floor of 2 so even
// tiny playlists get uniformly padded names.
func indexWidth(count int) int {
	width := len(strconv.Itoa(count))
	if width < 2 {
		width = 2
	}

	return width
}

// originalName keeps the server basename, disambiguating duplicates with a
// numeric suffix. The suffix is bumped past names earlier entries already
// claimed, so a duplicate cannot land on a distinct file literally named
// like a suffixed candidate.
func originalName(item playlist.Item, taken map[string]bool) string {
	base := filepath.Base(item.FilePath)

	if !taken[base] {
		taken[base] = true

		return base
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if !taken[candidate] {
			taken[candidate] = true

			return candidate
		}
	}
}
