package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OlhaTymoshenko/rssreader/ui/console"
	"github.com/spf13/cobra"
)

var flagFetchRefresh bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Print the current news once",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&flagFetchRefresh, "refresh", false, "skip the cache and load from the network")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(flagConfig, false)
	if err != nil {
		return err
	}
	defer a.Close()

	display := console.NewDisplay(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctrl, err := a.newController(ctx, display)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if flagFetchRefresh {
		ctrl.ForceReload()
	} else {
		ctrl.OnStart()
	}

	count, err := display.Wait(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d articles\n", count)
	return nil
}
