package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/plexdl/plexdl/internal/config"
	"github.com/plexdl/plexdl/internal/downloader"
	"github.com/plexdl/plexdl/internal/logctx"
	"github.com/plexdl/plexdl/internal/playlist"
	"github.com/plexdl/plexdl/internal/plex"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(logctx.WithLogger(ctx, logger), cfg); err != nil {
		slog.Error("fatal error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logctx.LoggerFromContext(ctx)

	client := plex.NewClient(cfg.Host, cfg.Token, cfg.Timeout, logger)

	if err := client.CheckConnection(ctx); err != nil {
		return err
	}

	resolver := playlist.NewResolver(client)

	if cfg.List {
		return listPlaylists(ctx, resolver, cfg.Type)
	}

	return downloadPlaylist(ctx, resolver, client, cfg)
}

// listPlaylists prints all eligible playlists grouped by type. An empty
// listing is not an error.
func listPlaylists(ctx context.Context, resolver *playlist.Resolver, typeFilter string) error {
	summaries, err := resolver.List(ctx, typeFilter)
	if err != nil {
		return err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Type != summaries[j].Type {
			return summaries[i].Type < summaries[j].Type
		}

		return summaries[i].Title < summaries[j].Title
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Type", "Playlist", "Items"})
	table.SetRowLine(false)
	table.SetAutoMergeCells(true)

	for _, s := range summaries {
		table.Append([]string{s.Type, s.Title, fmt.Sprint(s.ItemCount)})
	}

	table.Render()

	return nil
}

func downloadPlaylist(ctx context.Context, resolver *playlist.Resolver, client *plex.Client, cfg *config.Config) error {
	logger := logctx.LoggerFromContext(ctx)

	pl, err := resolver.Resolve(ctx, cfg.Playlist, cfg.Type)
	if err != nil {
		return err
	}

	logger.Info("playlist resolved", "playlist", pl.Title, "type", pl.Type, "item_count", len(pl.Items))

	plan, err := downloader.BuildPlan(pl.Items, downloader.PlanOptions{
		OrderBy:       cfg.OrderBy,
		OriginalNames: cfg.OriginalNames,
	})
	if err != nil {
		return err
	}

	report, err := downloader.New(client).Execute(ctx, plan, cfg.DestinationDir(pl.Title))
	if err != nil {
		return err
	}

	printReport(report, len(plan.Entries))

	return nil
}

// printReport summarizes the run on stdout and lists failures on stderr.
// Per-item failures do not change the exit code; re-running the same command
// retries them (overwrite semantics make that safe).
func printReport(report *downloader.Report, planned int) {
	if report.Ok() {
		fmt.Printf("Downloaded %d files to %s\n", len(report.Succeeded), report.Dir)

		return
	}

	fmt.Printf("Downloaded %d of %d files to %s\n", len(report.Succeeded), planned, report.Dir)

	for _, f := range report.Failed {
		fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.Filename, f.Err)
	}
}
