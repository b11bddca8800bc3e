package main

import (
	"fmt"
	"io"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	"github.com/OlhaTymoshenko/rssreader/core/feed"
	"github.com/OlhaTymoshenko/rssreader/pkg/utils/duration"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the cached feed",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached feed and whether it is fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(flagConfig, false)
		if err != nil {
			return err
		}
		defer a.Close()

		entry, ok := a.service.Store().Entry(cmd.Context())
		printCacheStatus(cmd.OutOrStdout(), a, entry, ok, time.Now())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached feed body and its timestamp",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(flagConfig, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.kv.Delete(cmd.Context(), feed.TimestampKey); err != nil {
			return fmt.Errorf("deleting timestamp: %w", err)
		}
		if err := a.blob.Remove(); err != nil {
			return fmt.Errorf("deleting body: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func printCacheStatus(w io.Writer, a *app, entry domain.CacheEntry, ok bool, now time.Time) {
	window := a.service.Store().Window()

	fmt.Fprintf(w, "Feed:       %s\n", a.cfg.Feed.URL)
	fmt.Fprintf(w, "Body file:  %s\n", a.blob.Path())
	fmt.Fprintf(w, "Timestamps: %s\n", a.kvType)
	fmt.Fprintf(w, "Window:     %s\n", duration.Humanize(window))

	if !ok {
		fmt.Fprintln(w, "Status:     no cached feed")
		return
	}

	state := "stale"
	if entry.IsFreshAt(now, window) {
		state = "fresh"
	}
	fmt.Fprintf(w, "Fetched:    %s (%s)\n", entry.FetchedAt.Local().Format(time.RFC1123), duration.Ago(entry.FetchedAt, now))
	fmt.Fprintf(w, "Size:       %d bytes\n", len(entry.RawBody))
	fmt.Fprintf(w, "Status:     %s\n", state)
}
