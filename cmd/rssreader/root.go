package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OlhaTymoshenko/rssreader/ui/console"
	"github.com/OlhaTymoshenko/rssreader/ui/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagRefresh bool
)

var rootCmd = &cobra.Command{
	Use:           "rssreader",
	Short:         "Terminal reader for a single RSS news feed",
	Long:          "rssreader shows the latest news of one RSS feed, served from a local cache for 24 hours.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "skip the cache and load from the network")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(cacheCmd)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless the display has already reported it
func reportError(w io.Writer, err error) {
	if errors.Is(err, console.ErrLoadFailed) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(flagConfig, true)
	if err != nil {
		return err
	}
	defer a.Close()

	exec := tui.NewExecutor(a.logger)
	if err := exec.Start(); err != nil {
		return fmt.Errorf("starting executor: %w", err)
	}
	defer exec.Stop()

	model := tui.NewApp(tui.Options{
		Reader:  a.readerService(),
		FeedURL: a.cfg.Feed.URL,
	})
	ctrl := a.bindController(context.Background(), model, exec)
	defer ctrl.Close()
	model.SetController(ctrl)

	p := tea.NewProgram(model, tea.WithAltScreen())
	exec.Attach(p)

	if flagRefresh {
		ctrl.ForceReload()
	}

	_, err = p.Run()
	return err
}
