package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

// Config holds everything a run needs. It is built once at startup from
// environment variables overlaid with command-line flags and is immutable
// afterwards.
type Config struct {
	Host  string `envconfig:"HOST"`
	Token string `envconfig:"TOKEN"`

	List          bool   `ignored:"true"`
	Playlist      string `ignored:"true"`
	SaveTo        string `ignored:"true"`
	OrderBy       string `ignored:"true"`
	OriginalNames bool   `ignored:"true"`

	Type     string        `envconfig:"TYPE"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"30s"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Load reads PLEXDL_* environment variables and parses the flags over them;
// a flag set on the command line wins over its environment variable.
func Load(args []string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("plexdl", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env: %w", err)
	}

	fs := pflag.NewFlagSet("plexdl", pflag.ContinueOnError)
	// Parse errors surface to the caller, which reports them; letting pflag
	// print them too would show every error twice.
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Host, "host", cfg.Host, "Plex server base URL, i.e. http://192.168.0.100:32400")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "token used to authenticate with the Plex server")
	fs.BoolVar(&cfg.List, "list", false, "list all available playlists and exit")
	fs.StringVar(&cfg.Playlist, "playlist", "", "name of the playlist to download")
	fs.StringVar(&cfg.SaveTo, "save-to", "", "directory to save the downloaded files to (default ./<playlist name>)")
	fs.StringVar(&cfg.OrderBy, "order-by", "", "metadata field to sort items by; default keeps the server order")
	fs.StringVar(&cfg.Type, "type", cfg.Type, "only consider playlists of this type (audio, video, photo)")
	fs.BoolVar(&cfg.OriginalNames, "original-filenames", false, "keep the original filenames instead of index-prefixed ones")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for Plex API requests")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (DEBUG, INFO, WARN, ERROR)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Printf("Usage of plexdl:\n%s", fs.FlagUsages())
		}

		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Host == "" {
		return errors.New("--host is required (or set PLEXDL_HOST)")
	}

	if c.Token == "" {
		return errors.New("--token is required (or set PLEXDL_TOKEN)")
	}

	if c.List && c.Playlist != "" {
		return errors.New("--list and --playlist are mutually exclusive")
	}

	if !c.List && c.Playlist == "" {
		return errors.New("either --list or --playlist <name> is required")
	}

	return nil
}

// DestinationDir resolves where files land: --save-to when given, otherwise
// a directory named after the playlist under the working directory.
func (c *Config) DestinationDir(playlistName string) string {
	if c.SaveTo != "" {
		return c.SaveTo
	}

	return filepath.Join(".", playlistName)
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
