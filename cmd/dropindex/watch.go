package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dropindex/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync the index, then watch the directory for changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		// Catch up on anything that happened while not running.
		stats, err := a.syncer.Sync(ctx, a.cfg.WatchDir)
		if err != nil {
			return fmt.Errorf("initial sync: %w", err)
		}
		log.Printf("sync: %d backfilled, %d removed, %d failed",
			stats.Backfilled, stats.Removed, stats.Failed)

		w, err := watcher.New(a.indexer, a.cfg)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		w.OnChange = a.searcher.Invalidate

		errChan := make(chan error, 1)
		go func() { errChan <- w.Run(ctx) }()

		select {
		case sig := <-sigChan:
			log.Printf("received %v, shutting down", sig)
			cancel()
			return nil
		case err := <-errChan:
			if err != nil && err != context.Canceled {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
