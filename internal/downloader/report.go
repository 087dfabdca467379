package downloader

// Failure records one entry that could not be downloaded.
type Failure struct {
	Filename string
	Err      error
}

// Report enumerates the outcome of executing a plan.
type Report struct {
	Dir       string
	Succeeded []string
	Failed    []Failure
}

// Ok reports whether every entry was written.
func (r *Report) Ok() bool {
	return len(r.Failed) == 0
}
