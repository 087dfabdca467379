package downloader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/plexdl/plexdl/internal/playlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	content map[string][]byte
	fail    map[string]error
}

func (f *fakeFetcher) Download(_ context.Context, partKey string) (io.ReadCloser, int64, error) {
	if err, ok := f.fail[partKey]; ok {
		return nil, 0, err
	}

	body, ok := f.content[partKey]
	if !ok {
		return nil, 0, errors.New("unknown part key: " + partKey)
	}

	return io.NopCloser(bytes.NewReader(body)), int64(len(body)), nil
}

func testPlan(keys ...string) *Plan {
	plan := &Plan{}

	for _, key := range keys {
		plan.Entries = append(plan.Entries, Entry{
			Item:     playlist.Item{Title: key, PartKey: key, FilePath: key + ".mp3"},
			Filename: filepath.Base(key) + ".mp3",
		})
	}

	return plan
}

func TestExecute_WritesAllFiles(t *testing.T) {
	fetcher := &fakeFetcher{content: map[string][]byte{
		"/parts/1": []byte("first"),
		"/parts/2": []byte("second"),
	}}

	destDir := filepath.Join(t.TempDir(), "out")

	report, err := New(fetcher).Execute(context.Background(), testPlan("/parts/1", "/parts/2"), destDir)
	require.NoError(t, err)

	assert.True(t, report.Ok())
	assert.Equal(t, []string{"1.mp3", "2.mp3"}, report.Succeeded)
	assert.Equal(t, destDir, report.Dir)

	got, err := os.ReadFile(filepath.Join(destDir, "1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestExecute_PartialFailureContinues(t *testing.T) {
	fetcher := &fakeFetcher{
		content: map[string][]byte{
			"/parts/1": []byte("first"),
			"/parts/3": []byte("third"),
		},
		fail: map[string]error{
			"/parts/2": errors.New("connection reset"),
		},
	}

	destDir := t.TempDir()

	report, err := New(fetcher).Execute(context.Background(), testPlan("/parts/1", "/parts/2", "/parts/3"), destDir)
	require.NoError(t, err)

	// Items 1 and 3 written even though 2 failed.
	assert.False(t, report.Ok())
	assert.Equal(t, []string{"1.mp3", "3.mp3"}, report.Succeeded)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "2.mp3", report.Failed[0].Filename)
	assert.ErrorContains(t, report.Failed[0].Err, "connection reset")

	assert.FileExists(t, filepath.Join(destDir, "1.mp3"))
	assert.NoFileExists(t, filepath.Join(destDir, "2.mp3"))
	assert.FileExists(t, filepath.Join(destDir, "3.mp3"))
}

func TestExecute_Idempotent(t *testing.T) {
	fetcher := &fakeFetcher{content: map[string][]byte{
		"/parts/1": []byte("same bytes every time"),
	}}

	destDir := t.TempDir()
	plan := testPlan("/parts/1")
	d := New(fetcher)

	_, err := d.Execute(context.Background(), plan, destDir)
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(destDir, "1.mp3"))
	require.NoError(t, err)

	_, err = d.Execute(context.Background(), plan, destDir)
	require.NoError(t, err)

	second, err := os.ReadFile(filepath.Join(destDir, "1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "re-run must not leave duplicate or orphaned files")
}

func TestExecute_CreatesNestedDestination(t *testing.T) {
	fetcher := &fakeFetcher{content: map[string][]byte{"/parts/1": []byte("x")}}

	destDir := filepath.Join(t.TempDir(), "a", "b", "c")

	_, err := New(fetcher).Execute(context.Background(), testPlan("/parts/1"), destDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(destDir, "1.mp3"))
}

func TestExecute_DirectoryCreateError(t *testing.T) {
	fetcher := &fakeFetcher{content: map[string][]byte{"/parts/1": []byte("x")}}

	// A regular file where a directory is needed.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	_, err := New(fetcher).Execute(context.Background(), testPlan("/parts/1"), filepath.Join(blocker, "out"))
	require.Error(t, err)

	var dirErr *DirectoryCreateError
	require.ErrorAs(t, err, &dirErr)
	assert.Contains(t, dirErr.Dir, "out")
}

func TestExecute_ContextCancelled(t *testing.T) {
	fetcher := &fakeFetcher{content: map[string][]byte{"/parts/1": []byte("x")}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(fetcher).Execute(ctx, testPlan("/parts/1"), t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Succeeded)
}
