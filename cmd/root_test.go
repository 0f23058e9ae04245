package cmd

import (
	"flag"
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"localbite/internal/config"

	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("localbite", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParse_FlagsAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LOCALBITE_DB", "")
	t.Setenv("LOCALBITE_CATALOG", "")

	dbPath := filepath.Join(dir, "data", "lb.db")
	cfg, err := parse(newFlagSet(), []string{"-db", dbPath, "-catalog", "events.yaml"}, "test", false)
	require.NoError(t, err)

	require.Equal(t, dbPath, cfg.DBPath)
	require.Equal(t, "events.yaml", cfg.CatalogPath)
	require.Equal(t, filepath.Join(dir, "data", "localbite.log"), cfg.LogPath)
	require.Equal(t, filepath.Join(dir, ".localbite", "config.yaml"), cfg.ConfigPath)
	require.NotNil(t, cfg.Settings)
}

func TestParse_EnvFallbacks(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LOCALBITE_DB", filepath.Join(dir, "env.db"))
	t.Setenv("LOCALBITE_CATALOG", "env.yaml")

	cfg, err := parse(newFlagSet(), nil, "test", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "env.db"), cfg.DBPath)
	require.Equal(t, "env.yaml", cfg.CatalogPath)
}

func TestParse_CatalogFromSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LOCALBITE_DB", "")
	t.Setenv("LOCALBITE_CATALOG", "")

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Save(configPath, &config.Settings{CatalogPath: "from-settings.yaml"}))

	cfg, err := parse(newFlagSet(), []string{"-config", configPath}, "test", false)
	require.NoError(t, err)
	require.Equal(t, "from-settings.yaml", cfg.CatalogPath)
}

func TestCompleteOnboarding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	settings, err := config.Load(path)
	require.NoError(t, err)

	next, err := completeOnboarding(path, settings, "  Austin ")
	require.NoError(t, err)
	require.Equal(t, "Austin", next.HomeCity)
	require.True(t, next.OnboardingCompleted)
	require.False(t, settings.OnboardingCompleted)

	reloaded, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "Austin", reloaded.HomeCity)
	require.False(t, shouldRunOnboarding(reloaded))
}

func TestOnboardingModel(t *testing.T) {
	m := newOnboardingModel("")
	for _, r := range "Portland" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(onboardingModel)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(onboardingModel)

	require.NotNil(t, cmd)
	require.Equal(t, stepDone, m.step)
	require.Equal(t, "Portland", m.city)
	require.Equal(t, "Filtering events to Portland. Press r on the events screen to see every city.", m.status)

	skipped, _ := newOnboardingModel("Austin").Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "", skipped.(onboardingModel).city)
}
