package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"localbite/internal/config"
)

// Config holds CLI configuration.
type Config struct {
	DBPath      string
	CatalogPath string
	ConfigPath  string
	LogPath     string
	Settings    *config.Settings
	ShowVersion bool
}

// ParseFlags parses command-line flags and returns configuration. It may run
// the first-run onboarding TUI.
func ParseFlags(version string) (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:], version, true)
}

func parse(fs *flag.FlagSet, args []string, version string, interactive bool) (*Config, error) {
	cfg := &Config{}

	// Existing environment variables win over .env values.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	fs.StringVar(&cfg.DBPath, "db", "", "Path to SQLite database file (default: ~/.localbite/localbite.db, or LOCALBITE_DB)")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "Path to a YAML event catalog (or set LOCALBITE_CATALOG)")
	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to the settings file (default: ~/.localbite/config.yaml)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		fmt.Println("localbite", version)
		return cfg, nil
	}

	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("LOCALBITE_DB")
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = os.Getenv("LOCALBITE_CATALOG")
	}

	dataDir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dataDir, "localbite.db")
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = filepath.Join(dataDir, "config.yaml")
	}
	cfg.LogPath = filepath.Join(filepath.Dir(cfg.DBPath), "localbite.log")

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	settings, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if interactive && shouldRunOnboarding(settings) {
		settings, err = runOnboarding(cfg.ConfigPath, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}

	if cfg.CatalogPath == "" {
		cfg.CatalogPath = settings.CatalogPath
	}
	cfg.Settings = settings
	return cfg, nil
}
