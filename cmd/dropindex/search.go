package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagTopK int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find indexed files by meaning",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		query := strings.Join(args, " ")
		results, err := a.searcher.Search(context.Background(), query, flagTopK)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for i, r := range results {
			fmt.Printf("%2d. [%.4f] %s\n", i+1, r.Score, r.Filename)
			fmt.Printf("    %s\n", r.Path)
			if snippet := previewLine(r.Snippet); snippet != "" {
				fmt.Printf("    %s\n", snippet)
			}
		}
		return nil
	},
}

// previewLine flattens a snippet to one short line for terminal output.
func previewLine(snippet string) string {
	flat := strings.Join(strings.Fields(snippet), " ")
	const max = 120
	if len(flat) > max {
		return flat[:max] + "..."
	}
	return flat
}

func init() {
	searchCmd.Flags().IntVar(&flagTopK, "top-k", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
