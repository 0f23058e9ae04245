package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"localbite/internal/model"
)

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	DashboardSort model.SavedSort `json:"dashboard_sort"`
	LastScreen    string          `json:"last_screen,omitempty"`
}

func defaultUIPreferences(sort model.SavedSort) UIPreferences {
	if sort != model.SavedSortName {
		sort = model.SavedSortDate
	}
	return UIPreferences{DashboardSort: sort}
}

// PrefsPath returns the preferences file inside the data directory.
func PrefsPath(dataDir string) string {
	return filepath.Join(dataDir, "ui_prefs.json")
}

func loadUIPreferences(path string, fallback model.SavedSort) UIPreferences {
	if path == "" {
		return defaultUIPreferences(fallback)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultUIPreferences(fallback)
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return defaultUIPreferences(fallback)
	}
	if prefs.DashboardSort != model.SavedSortDate && prefs.DashboardSort != model.SavedSortName {
		prefs.DashboardSort = defaultUIPreferences(fallback).DashboardSort
	}
	return prefs
}

func saveUIPreferences(path string, prefs UIPreferences) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
