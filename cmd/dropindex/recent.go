package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the newest files in the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.searcher.Recent(context.Background(), flagLimit)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("Index is empty.")
			return nil
		}
		for i, r := range results {
			fmt.Printf("%2d. %s\n", i+1, r.Filename)
			fmt.Printf("    %s\n", r.Path)
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVar(&flagLimit, "limit", 10, "maximum number of files")
	rootCmd.AddCommand(recentCmd)
}
