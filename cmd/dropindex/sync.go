package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the index with the watched directory once",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Printf("Syncing %s...\n", a.cfg.WatchDir)
		start := time.Now()

		stats, err := a.syncer.Sync(context.Background(), a.cfg.WatchDir)
		if err != nil {
			return err
		}

		fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("  Backfilled: %d\n", stats.Backfilled)
		fmt.Printf("  Removed:    %d\n", stats.Removed)
		if stats.Failed > 0 {
			fmt.Printf("  Failed:     %d\n", stats.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
