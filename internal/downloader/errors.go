package downloader

import "fmt"

// MissingSortFieldError reports an item that lacks the requested sort field.
// Planning aborts on the first such item: no bytes have been written yet, and
// silently excluding the item would shift every following index.
type MissingSortFieldError struct {
	ItemTitle string // Title of the offending item
	Field     string // The requested sort field
}

func (e *MissingSortFieldError) Error() string {
	return fmt.Sprintf("item %q has no %q field to sort by", e.ItemTitle, e.Field)
}

// DirectoryCreateError represents a failure to create the destination
// directory. It is fatal for the run.
type DirectoryCreateError struct {
	Dir string // The directory that could not be created
	Err error  // Underlying error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("failed to create destination directory %q: %v", e.Dir, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error {
	return e.Err
}
