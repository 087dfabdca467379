package downloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/plexdl/plexdl/internal/downloader/progress"
	"github.com/plexdl/plexdl/internal/logctx"
)

const (
	dirPerm = 0755

	progressInterval = int64(10 * 1024 * 1024) // 10MB
)

// Fetcher streams the media part behind a plan entry.
type Fetcher interface {
	Download(ctx context.Context, partKey string) (io.ReadCloser, int64, error)
}

// Downloader executes a plan sequentially against a destination directory.
type Downloader struct {
	fetcher Fetcher
}

func New(fetcher Fetcher) *Downloader {
	return &Downloader{fetcher: fetcher}
}

// Execute writes each plan entry to destDir in plan order. Existing files
// are overwritten, so re-running the same plan reproduces the same file set.
// A single entry's failure is recorded in the report and the run continues;
// only directory creation failure and context cancellation abort.
func (d *Downloader) Execute(ctx context.Context, plan *Plan, destDir string) (*Report, error) {
	logger := logctx.LoggerFromContext(ctx).With("dest_dir", destDir)

	if err := os.MkdirAll(destDir, dirPerm); err != nil {
		return nil, &DirectoryCreateError{Dir: destDir, Err: err}
	}

	report := &Report{Dir: destDir}

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := d.downloadEntry(ctx, entry, destDir); err != nil {
			logger.Error("failed to download item", "file", entry.Filename, "title", entry.Item.Title, "err", err)

			report.Failed = append(report.Failed, Failure{Filename: entry.Filename, Err: err})

			continue
		}

		report.Succeeded = append(report.Succeeded, entry.Filename)
	}

	return report, nil
}

func (d *Downloader) downloadEntry(ctx context.Context, entry Entry, destDir string) error {
	logger := logctx.LoggerFromContext(ctx)

	reader, size, err := d.fetcher.Download(ctx, entry.Item.PartKey)
	if err != nil {
		return fmt.Errorf("failed to fetch item: %w", err)
	}

	defer reader.Close()

	if size <= 0 {
		size = entry.Item.Size
	}

	targetPath := filepath.Join(destDir, entry.Filename)

	out, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to create target file: %w", err)
	}

	defer out.Close()

	if size > 0 {
		logger.Info("downloading file", "file", entry.Filename, "title", entry.Item.Title, "size", humanize.Bytes(uint64(size)))
	} else {
		logger.Info("downloading file", "file", entry.Filename, "title", entry.Item.Title)
	}

	pr := progress.NewReader(reader, size, progressInterval, func(written, total int64) {
		if total > 0 {
			logger.Debug("download progress",
				"file", entry.Filename,
				"downloaded", humanize.Bytes(uint64(written)),
				"total", humanize.Bytes(uint64(total)))
		} else {
			logger.Debug("download progress", "file", entry.Filename, "downloaded", humanize.Bytes(uint64(written)))
		}
	})

	if _, err := io.Copy(out, pr); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close target file: %w", err)
	}

	logger.Debug("downloaded and saved file", "target", targetPath)

	return nil
}
