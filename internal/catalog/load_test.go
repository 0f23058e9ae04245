package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"localbite/internal/model"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	events, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, events)

	seen := map[string]bool{}
	for _, e := range events {
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
		require.True(t, e.Category.Valid(), "event %s has category %q", e.ID, e.Category)
		require.NotEmpty(t, e.DatePretty)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		wantLen int
	}{
		{
			name: "valid",
			doc: `
events:
  - id: one
    name: One
    date: "2024-03-05"
    category: Market
    tags: [a, b]
`,
			wantLen: 1,
		},
		{
			name:    "empty document",
			doc:     ``,
			wantLen: 0,
		},
		{
			name: "duplicate id",
			doc: `
events:
  - {id: one, name: One, date: "2024-03-05", category: Market}
  - {id: one, name: Two, date: "2024-03-06", category: Market}
`,
			wantErr: ErrDuplicateID,
		},
		{
			name: "missing id",
			doc: `
events:
  - {name: One, date: "2024-03-05", category: Market}
`,
			wantErr: ErrMissingID,
		},
		{
			name: "invalid date",
			doc: `
events:
  - {id: one, name: One, date: "03/05/2024", category: Market}
`,
			wantErr: ErrInvalidDate,
		},
		{
			name: "unknown category",
			doc: `
events:
  - {id: one, name: One, date: "2024-03-05", category: Brunch}
`,
			wantErr: ErrUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Parse([]byte(tt.doc))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, events, tt.wantLen)
		})
	}
}

func TestParse_FillsPrettyDate(t *testing.T) {
	events, err := Parse([]byte(`
events:
  - {id: one, name: One, date: "2024-03-09", category: Tasting}
  - {id: two, name: Two, date: "2024-03-10", date_pretty: Sunday, category: Tasting}
`))
	require.NoError(t, err)
	require.Equal(t, "Sat, Mar 9", events[0].DatePretty)
	require.Equal(t, "Sunday", events[1].DatePretty)
	require.Equal(t, model.CategoryTasting, events[0].Category)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
events:
  - {id: one, name: One, date: "2024-03-05", category: Pop-up, city: Austin}
`), 0o644))

	events, err := Load(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Austin", events[0].City)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bundled, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, bundled)
}
