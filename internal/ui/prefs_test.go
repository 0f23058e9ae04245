package ui

import (
	"os"
	"path/filepath"
	"testing"

	"localbite/internal/model"

	"github.com/stretchr/testify/require"
)

func TestUIPreferences(t *testing.T) {
	dir := t.TempDir()
	path := PrefsPath(dir)

	require.Equal(t, model.SavedSortName, loadUIPreferences(path, model.SavedSortName).DashboardSort)
	require.Equal(t, model.SavedSortDate, loadUIPreferences(path, "bogus").DashboardSort)

	want := UIPreferences{DashboardSort: model.SavedSortName, LastScreen: "events"}
	require.NoError(t, saveUIPreferences(path, want))
	require.Equal(t, want, loadUIPreferences(path, model.SavedSortDate))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	require.Equal(t, model.SavedSortDate, loadUIPreferences(path, model.SavedSortDate).DashboardSort)

	require.NoError(t, os.WriteFile(path, []byte(`{"dashboard_sort":"rating"}`), 0o600))
	require.Equal(t, model.SavedSortName, loadUIPreferences(path, model.SavedSortName).DashboardSort)

	require.NoError(t, saveUIPreferences("", want))
	require.Equal(t, model.SavedSortDate, loadUIPreferences("", "").DashboardSort)

	nested := filepath.Join(dir, "a", "b", "ui_prefs.json")
	require.NoError(t, saveUIPreferences(nested, want))
	require.FileExists(t, nested)
}
