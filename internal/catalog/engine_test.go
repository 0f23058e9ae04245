package catalog

import (
	"testing"

	"localbite/internal/model"

	"github.com/stretchr/testify/require"
)

func ev(id, name, date string, category model.Category, location, city string) model.EventRecord {
	return model.EventRecord{ID: id, Name: name, Date: date, Category: category, Location: location, City: city}
}

func ids(events []model.EventRecord) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func sampleEvents() []model.EventRecord {
	return []model.EventRecord{
		ev("a", "Zesty Tacos", "2024-01-02", model.CategoryStreetFood, "Riverside Park", "Austin"),
		ev("b", "Bread Class", "2024-01-01", model.CategoryWorkshop, "Flour Studio", "Portland"),
		ev("c", "apple Market", "2024-01-02", model.CategoryMarket, "Main Plaza", "Austin"),
		ev("d", "Wine Night", "2023-12-31", model.CategoryTasting, "Cellar Door", "San Francisco"),
	}
}

func TestSortEvents(t *testing.T) {
	events := sampleEvents()
	sorted := SortEvents(events)

	require.Equal(t, []string{"d", "b", "c", "a"}, ids(sorted))
	require.Equal(t, []string{"a", "b", "c", "d"}, ids(events), "input must not be reordered")
	require.Equal(t, ids(sorted), ids(SortEvents(sorted)), "sorting is idempotent")
}

func TestSortEvents_CalendarValueNotString(t *testing.T) {
	events := []model.EventRecord{
		ev("later", "A", "2024-10-01", model.CategoryMarket, "", ""),
		ev("earlier", "B", "2024-09-30", model.CategoryMarket, "", ""),
	}
	require.Equal(t, []string{"earlier", "later"}, ids(SortEvents(events)))
}

func TestSortEvents_SameDateByName(t *testing.T) {
	events := []model.EventRecord{
		ev("A", "A", "2024-01-02", model.CategoryMarket, "", ""),
		ev("B", "B", "2024-01-01", model.CategoryMarket, "", ""),
	}
	require.Equal(t, []string{"B", "A"}, ids(SortEvents(events)))
}

func TestSortByDateAndName(t *testing.T) {
	events := sampleEvents()
	require.Equal(t, []string{"d", "b", "a", "c"}, ids(SortByDate(events)))
	require.Equal(t, []string{"c", "b", "d", "a"}, ids(SortByName(events)))
}

func TestFilterEvents(t *testing.T) {
	sorted := SortEvents(sampleEvents())

	tests := []struct {
		name    string
		filters model.Filters
		want    []string
	}{
		{
			name:    "no constraints",
			filters: model.DefaultFilters(),
			want:    []string{"d", "b", "c", "a"},
		},
		{
			name:    "category exact match",
			filters: model.Filters{Category: "Market", SelectedDate: model.AllDates},
			want:    []string{"c"},
		},
		{
			name:    "category is case sensitive",
			filters: model.Filters{Category: "market", SelectedDate: model.AllDates},
			want:    []string{},
		},
		{
			name:    "category not in catalog",
			filters: model.Filters{Category: string(model.CategoryFineDining), SelectedDate: model.AllDates},
			want:    []string{},
		},
		{
			name:    "location matches city ignoring case",
			filters: model.Filters{Category: model.AllCategories, LocationQuery: "AUSTIN", SelectedDate: model.AllDates},
			want:    []string{"c", "a"},
		},
		{
			name:    "location matches across location and city",
			filters: model.Filters{Category: model.AllCategories, LocationQuery: "door san", SelectedDate: model.AllDates},
			want:    []string{"d"},
		},
		{
			name:    "date exact match",
			filters: model.Filters{Category: model.AllCategories, SelectedDate: "2024-01-02"},
			want:    []string{"c", "a"},
		},
		{
			name:    "all predicates combined",
			filters: model.Filters{Category: "Street Food", LocationQuery: "river", SelectedDate: "2024-01-02"},
			want:    []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(sorted, tt.filters)
			require.Equal(t, tt.want, ids(got))
			require.Equal(t, got, FilterEvents(sorted, tt.filters), "filtering is pure")
		})
	}
}

func TestFilterEvents_DoesNotMutateInput(t *testing.T) {
	sorted := SortEvents(sampleEvents())
	before := append([]model.EventRecord(nil), sorted...)

	got := FilterEvents(sorted, model.Filters{Category: "Market", SelectedDate: model.AllDates})
	require.Len(t, got, 1)
	got[0].Name = "changed"

	require.Equal(t, before, sorted)
}

func TestLocationMatches_EmptyQueryMatchesAll(t *testing.T) {
	for _, e := range sampleEvents() {
		require.True(t, LocationMatches("", e))
	}
	require.True(t, LocationMatches("", model.EventRecord{}))
}

func TestDistinctDates(t *testing.T) {
	events := []model.EventRecord{
		ev("1", "x", "2024-03-05", model.CategoryMarket, "", ""),
		ev("2", "y", "2024-03-01", model.CategoryMarket, "", ""),
		ev("3", "z", "2024-03-05", model.CategoryMarket, "", ""),
	}
	require.Equal(t, []string{model.AllDates, "2024-03-01", "2024-03-05"}, DistinctDates(events))
	require.Equal(t, []string{model.AllDates}, DistinctDates(nil))
}

func TestReconcileSelection(t *testing.T) {
	raw := []model.EventRecord{
		ev("A", "A", "2024-01-02", model.CategoryMarket, "", ""),
		ev("B", "B", "2024-01-01", model.CategoryTasting, "", ""),
	}
	sorted := SortEvents(raw)

	tests := []struct {
		name     string
		current  string
		filtered []model.EventRecord
		want     string
	}{
		{
			name:     "empty filtered set clears selection",
			current:  "A",
			filtered: FilterEvents(sorted, model.Filters{Category: "Festival", SelectedDate: model.AllDates}),
			want:     "",
		},
		{
			name:     "valid selection is kept",
			current:  "A",
			filtered: sorted,
			want:     "A",
		},
		{
			name:     "stale selection falls back to first filtered",
			current:  "A",
			filtered: FilterEvents(sorted, model.Filters{Category: "Tasting", SelectedDate: model.AllDates}),
			want:     "B",
		},
		{
			name:     "no selection picks first filtered",
			current:  "",
			filtered: sorted,
			want:     "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ReconcileSelection(tt.current, tt.filtered, sorted, raw))
		})
	}
}

func TestReconcileSelection_FallbackTiers(t *testing.T) {
	noID := ev("", "Unnamed", "2024-01-01", model.CategoryMarket, "", "")
	named := ev("S", "Supper", "2024-01-02", model.CategoryMarket, "", "")
	rawFirst := ev("R", "Roast", "2024-01-03", model.CategoryMarket, "", "")

	tests := []struct {
		name     string
		filtered []model.EventRecord
		sorted   []model.EventRecord
		raw      []model.EventRecord
		want     string
	}{
		{
			name:     "first sorted when filtered head has no id",
			filtered: []model.EventRecord{noID},
			sorted:   []model.EventRecord{named, noID},
			raw:      []model.EventRecord{rawFirst},
			want:     "S",
		},
		{
			name:     "first raw when sorted head has no id",
			filtered: []model.EventRecord{noID},
			sorted:   []model.EventRecord{noID},
			raw:      []model.EventRecord{rawFirst},
			want:     "R",
		},
		{
			name:     "first raw when sorted is empty",
			filtered: []model.EventRecord{noID},
			raw:      []model.EventRecord{rawFirst},
			want:     "R",
		},
		{
			name:     "nothing left to pick",
			filtered: []model.EventRecord{noID},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ReconcileSelection("gone", tt.filtered, tt.sorted, tt.raw))
		})
	}
}

func TestReconcileSelection_Idempotent(t *testing.T) {
	raw := sampleEvents()
	sorted := SortEvents(raw)
	filtered := FilterEvents(sorted, model.Filters{Category: model.AllCategories, LocationQuery: "austin", SelectedDate: model.AllDates})

	first := ReconcileSelection("d", filtered, sorted, raw)
	require.Equal(t, "c", first)
	require.Equal(t, first, ReconcileSelection(first, filtered, sorted, raw))
}

func TestInitialSelection(t *testing.T) {
	raw := sampleEvents()
	require.Equal(t, "d", InitialSelection(SortEvents(raw), raw))
	require.Equal(t, "a", InitialSelection(nil, raw))
	require.Equal(t, "", InitialSelection(nil, nil))
}

func TestFindByID(t *testing.T) {
	events := sampleEvents()

	got, ok := FindByID(events, "c")
	require.True(t, ok)
	require.Equal(t, "apple Market", got.Name)

	_, ok = FindByID(events, "missing")
	require.False(t, ok)
}
