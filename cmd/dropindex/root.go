package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dropindex/internal/catalog"
	"dropindex/internal/config"
	"dropindex/internal/embedder"
	"dropindex/internal/extract"
	"dropindex/internal/indexer"
	"dropindex/internal/searcher"
	"dropindex/internal/syncer"
)

var (
	flagConfig  string
	flagDB      string
	flagDir     string
	flagVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "dropindex",
	Short: "Semantic index over a watched directory",
	Long: `dropindex watches a directory (Downloads by default), extracts text
from new files, embeds it, and makes everything searchable by meaning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVersion {
			fmt.Printf("dropindex\n")
			fmt.Printf("Version: %s\n", version)
			fmt.Printf("Build Time: %s\n", buildTime)
			fmt.Printf("Build Mode: %s\n", catalog.BuildMode)
			fmt.Printf("SQLite Driver: %s\n", catalog.DriverName)
			fmt.Printf("Vector Extension: %v\n", catalog.VectorExtensionAvailable)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.dropindex/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "directory to watch (overrides config)")
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "print version and build information")
}

// loadConfig resolves configuration from flags, file, and environment.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".dropindex", "config.yaml")
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagDir != "" {
		cfg.WatchDir = flagDir
	}
	return cfg, nil
}

// app bundles the wired components behind the CLI commands.
type app struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	indexer  *indexer.Indexer
	syncer   *syncer.Syncer
	searcher *searcher.Searcher
	embedder *embedder.Service
}

// openApp opens the catalog and wires the pipeline from configuration.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	cat, err := catalog.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	emb := newEmbedderService(cfg)
	ix := indexer.New(cat, extract.NewRegistry(), emb)

	return &app{
		cfg:      cfg,
		catalog:  cat,
		indexer:  ix,
		syncer:   syncer.New(cat, ix, cfg),
		searcher: searcher.New(cat, emb),
		embedder: emb,
	}, nil
}

func newEmbedderService(cfg *config.Config) *embedder.Service {
	if cfg.Embedding.Provider == "" {
		return embedder.NewService()
	}
	return embedder.NewServiceWith(func() (embedder.Embedder, error) {
		return embedder.New(embedder.Config{
			Provider:  cfg.Embedding.Provider,
			CacheSize: cfg.Embedding.CacheSize,
		})
	})
}

func (a *app) Close() {
	_ = a.embedder.Close()
	_ = a.catalog.Close()
}
