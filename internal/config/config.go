package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"localbite/internal/model"
)

// Settings is the persisted user configuration at ~/.localbite/config.yaml.
type Settings struct {
	// CatalogPath points at a YAML event catalog. Empty means the built-in one.
	CatalogPath string `yaml:"catalog_path"`

	// ExportPath is where the dashboard writes the saved itinerary.
	ExportPath string `yaml:"export_path"`

	// HomeCity pre-fills the location filter on start.
	HomeCity string `yaml:"home_city"`

	// CatalogRefresh is a cron-style schedule (e.g. "*/30 * * * *") for
	// re-reading the catalog file. Empty disables it.
	CatalogRefresh string `yaml:"catalog_refresh"`

	// DashboardSort is the initial order of saved events: "date" or "name".
	DashboardSort model.SavedSort `yaml:"dashboard_sort"`

	OnboardingCompleted bool `yaml:"onboarding_completed"`
}

// Dir returns the LocalBite data directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".localbite"), nil
}

// Default returns settings rooted at dir.
func Default(dir string) *Settings {
	return &Settings{
		ExportPath:    filepath.Join(dir, "itinerary.ics"),
		DashboardSort: model.SavedSortDate,
	}
}

// Normalize fills zero values and repairs unknown enum values.
func (s *Settings) Normalize(dir string) {
	s.HomeCity = strings.TrimSpace(s.HomeCity)
	s.CatalogPath = strings.TrimSpace(s.CatalogPath)
	s.CatalogRefresh = strings.TrimSpace(s.CatalogRefresh)
	if s.ExportPath == "" {
		s.ExportPath = filepath.Join(dir, "itinerary.ics")
	}
	switch s.DashboardSort {
	case model.SavedSortDate, model.SavedSortName:
	default:
		s.DashboardSort = model.SavedSortDate
	}
}

// Load reads settings from path. A missing file yields defaults and is not
// created until Save is called.
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(dir), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	s.Normalize(dir)
	return &s, nil
}

// RefreshSchedule parses CatalogRefresh. It returns nil when refresh is off.
// Load keeps an unparsable value so the caller can report it and run without
// refresh.
func (s *Settings) RefreshSchedule() (cron.Schedule, error) {
	if s.CatalogRefresh == "" {
		return nil, nil
	}
	sched, err := cron.ParseStandard(s.CatalogRefresh)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog_refresh %q: %w", s.CatalogRefresh, err)
	}
	return sched, nil
}

// Save writes settings atomically with 0600 permissions.
func Save(path string, s *Settings) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if s == nil {
		return errors.New("settings are nil")
	}

	dir := filepath.Dir(path)
	s.Normalize(dir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".localbite-config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to chmod config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}
