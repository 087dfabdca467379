package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DownloadMode(t *testing.T) {
	cfg, err := Load([]string{
		"--host", "http://plex.local:32400",
		"--token", "secret",
		"--playlist", "Road Trip",
		"--save-to", "/tmp/music",
		"--order-by", "titleSort",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://plex.local:32400", cfg.Host)
	assert.Equal(t, "secret", cfg.Token)
	assert.False(t, cfg.List)
	assert.Equal(t, "Road Trip", cfg.Playlist)
	assert.Equal(t, "/tmp/music", cfg.SaveTo)
	assert.Equal(t, "titleSort", cfg.OrderBy)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_ListMode(t *testing.T) {
	cfg, err := Load([]string{"--host", "http://plex.local:32400", "--token", "secret", "--list"})
	require.NoError(t, err)

	assert.True(t, cfg.List)
	assert.Empty(t, cfg.Playlist)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing host",
			args:    []string{"--token", "secret", "--list"},
			wantErr: "--host is required",
		},
		{
			name:    "missing token",
			args:    []string{"--host", "http://plex.local:32400", "--list"},
			wantErr: "--token is required",
		},
		{
			name:    "list and playlist together",
			args:    []string{"--host", "h", "--token", "t", "--list", "--playlist", "Mix"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "neither list nor playlist",
			args:    []string{"--host", "h", "--token", "t"},
			wantErr: "either --list or --playlist",
		},
		{
			name:    "unknown flag",
			args:    []string{"--host", "h", "--token", "t", "--list", "--bogus"},
			wantErr: "unknown flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_Help(t *testing.T) {
	_, err := Load([]string{"--help"})
	require.ErrorIs(t, err, pflag.ErrHelp)
}

func TestLoad_EnvFallback(t *testing.T) {
	t.Setenv("PLEXDL_HOST", "http://env.local:32400")
	t.Setenv("PLEXDL_TOKEN", "env-token")
	t.Setenv("PLEXDL_TIMEOUT", "90s")

	cfg, err := Load([]string{"--list"})
	require.NoError(t, err)

	assert.Equal(t, "http://env.local:32400", cfg.Host)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("PLEXDL_HOST", "http://env.local:32400")
	t.Setenv("PLEXDL_TOKEN", "env-token")

	cfg, err := Load([]string{"--host", "http://flag.local:32400", "--list"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag.local:32400", cfg.Host)
	assert.Equal(t, "env-token", cfg.Token)
}

func TestDestinationDir(t *testing.T) {
	withSaveTo := &Config{SaveTo: "/data/music"}
	assert.Equal(t, "/data/music", withSaveTo.DestinationDir("Road Trip"))

	withoutSaveTo := &Config{}
	assert.Equal(t, filepath.Join(".", "Road Trip"), withoutSaveTo.DestinationDir("Road Trip"))
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "DEBUG", want: slog.LevelDebug},
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: "WARN", want: slog.LevelWarn},
		{level: "ERROR", want: slog.LevelError},
		{level: "bogus", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			assert.Equal(t, tt.want, cfg.SlogLevel())
		})
	}
}
