package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvWatchDir = "DROPINDEX_WATCH_DIR"
	EnvDBPath   = "DROPINDEX_DB_PATH"
	EnvWorkers  = "DROPINDEX_SYNC_WORKERS"
)

// Duration wraps time.Duration so YAML values like "2s" parse. yaml.v3
// has no native duration support.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// EmbeddingConfig selects the embedding provider and its cache size.
type EmbeddingConfig struct {
	// Provider is one of jina, openai, local. Empty means auto-detect
	// from API keys in the environment.
	Provider  string `yaml:"provider"`
	CacheSize int    `yaml:"cache_size"`
}

// Config is the full runtime configuration.
type Config struct {
	// WatchDir is the directory being indexed. Not recursive.
	WatchDir string `yaml:"watch_dir"`

	// DBPath is the SQLite catalog location.
	DBPath string `yaml:"db_path"`

	// AllowedExtensions limits which files are indexed.
	AllowedExtensions []string `yaml:"allowed_extensions"`

	// TempExtensions marks in-progress download artifacts to ignore.
	TempExtensions []string `yaml:"temp_extensions"`

	// StabilityDelay is how long the watcher waits after a create event
	// before checking whether the file has settled.
	StabilityDelay Duration `yaml:"stability_delay"`

	// SampleInterval separates the two size samples of the stability
	// check.
	SampleInterval Duration `yaml:"sample_interval"`

	// SyncWorkers bounds concurrent file indexing during a sync pass.
	SyncWorkers int `yaml:"sync_workers"`

	Embedding EmbeddingConfig `yaml:"embedding"`
}

// Default returns the configuration used when no file is present:
// watch the user's Downloads directory with the standard extension sets.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		WatchDir: filepath.Join(home, "Downloads"),
		DBPath:   filepath.Join(home, ".dropindex", "index.db"),
		AllowedExtensions: []string{
			".pdf", ".txt", ".md", ".docx", ".ipynb", ".py", ".csv",
			".png", ".jpg", ".jpeg",
		},
		TempExtensions: []string{".crdownload", ".part", ".tmp", ".download"},
		StabilityDelay: Duration(2 * time.Second),
		SampleInterval: Duration(500 * time.Millisecond),
		SyncWorkers:    4,
		Embedding: EmbeddingConfig{
			CacheSize: 10000,
		},
	}
}

// Load reads the YAML file at path, falling back to defaults when the
// file is absent, then applies environment overrides. Path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Missing file means defaults, not failure.
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.StabilityDelay <= 0 {
		cfg.StabilityDelay = Duration(2 * time.Second)
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = Duration(500 * time.Millisecond)
	}
	if cfg.SyncWorkers <= 0 {
		cfg.SyncWorkers = 4
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvWatchDir); v != "" {
		cfg.WatchDir = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SyncWorkers = n
		}
	}
}

// AllowedSet returns the allowed extensions as a lowercase lookup set.
func (c *Config) AllowedSet() map[string]bool {
	return extSet(c.AllowedExtensions)
}

// TempSet returns the temp extensions as a lowercase lookup set.
func (c *Config) TempSet() map[string]bool {
	return extSet(c.TempExtensions)
}

func extSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// EligibleFile reports whether a file name should be indexed: not
// hidden, not a temp download artifact, and carrying an allowed
// extension.
func (c *Config) EligibleFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	if c.TempSet()[ext] {
		return false
	}
	return c.AllowedSet()[ext]
}
