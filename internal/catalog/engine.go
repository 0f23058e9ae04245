// Package catalog holds the event catalog and the pure functions that derive
// the event list views from it: canonical ordering, filtering, the date
// picker values and selection reconciliation.
package catalog

import (
	"sort"
	"strings"
	"time"

	"localbite/internal/model"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. Unparseable input yields the
// zero time, which orders before every real date.
func ParseDate(date string) time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}
	}
	return t
}

// lessByDate compares two dates by calendar value.
func lessByDate(a, b string) (less, equal bool) {
	ta, tb := ParseDate(a), ParseDate(b)
	if ta.Equal(tb) {
		return false, true
	}
	return ta.Before(tb), false
}

func lessByName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// SortEvents returns the catalog in canonical order: date ascending, name
// ascending on ties. The input is not modified.
func SortEvents(events []model.EventRecord) []model.EventRecord {
	sorted := append([]model.EventRecord(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		less, equal := lessByDate(sorted[i].Date, sorted[j].Date)
		if !equal {
			return less
		}
		return lessByName(sorted[i].Name, sorted[j].Name)
	})
	return sorted
}

// SortByDate orders events by calendar date only, keeping the relative order of
// events on the same day.
func SortByDate(events []model.EventRecord) []model.EventRecord {
	sorted := append([]model.EventRecord(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		less, _ := lessByDate(sorted[i].Date, sorted[j].Date)
		return less
	})
	return sorted
}

// SortByName orders events by name only.
func SortByName(events []model.EventRecord) []model.EventRecord {
	sorted := append([]model.EventRecord(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessByName(sorted[i].Name, sorted[j].Name)
	})
	return sorted
}

// CategoryMatches reports whether the event passes the category filter.
func CategoryMatches(category string, event model.EventRecord) bool {
	return category == model.AllCategories || string(event.Category) == category
}

// LocationMatches reports whether the event's location or city contains the
// query, ignoring case. An empty query matches everything.
func LocationMatches(query string, event model.EventRecord) bool {
	if query == "" {
		return true
	}
	haystack := strings.ToLower(event.Location + " " + event.City)
	return strings.Contains(haystack, strings.ToLower(query))
}

// DateMatches reports whether the event passes the date filter.
func DateMatches(selectedDate string, event model.EventRecord) bool {
	return selectedDate == model.AllDates || event.Date == selectedDate
}

// FilterEvents returns the events passing every filter predicate, in the order
// they were given. The result is always a fresh slice.
func FilterEvents(sorted []model.EventRecord, filters model.Filters) []model.EventRecord {
	filtered := make([]model.EventRecord, 0, len(sorted))
	for _, event := range sorted {
		if CategoryMatches(filters.Category, event) &&
			LocationMatches(filters.LocationQuery, event) &&
			DateMatches(filters.SelectedDate, event) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// DistinctDates returns the distinct event dates ascending by calendar value,
// preceded by the "All dates" sentinel.
func DistinctDates(events []model.EventRecord) []string {
	seen := make(map[string]bool, len(events))
	var dates []string
	for _, event := range events {
		if seen[event.Date] {
			continue
		}
		seen[event.Date] = true
		dates = append(dates, event.Date)
	}
	sort.SliceStable(dates, func(i, j int) bool {
		less, equal := lessByDate(dates[i], dates[j])
		if equal {
			return dates[i] < dates[j]
		}
		return less
	})
	return append([]string{model.AllDates}, dates...)
}

// ReconcileSelection returns the event id that should be selected once the
// filtered set is known.
//
// An empty filtered set always clears the selection. A current id that is
// still in the filtered set is kept. Otherwise the selection falls back to the
// first filtered event, then the first canonical event, then the first raw
// catalog event.
func ReconcileSelection(current string, filtered, sorted, raw []model.EventRecord) string {
	if len(filtered) == 0 {
		return ""
	}
	if current != "" && containsID(filtered, current) {
		return current
	}
	switch {
	case filtered[0].ID != "":
		return filtered[0].ID
	case len(sorted) > 0 && sorted[0].ID != "":
		return sorted[0].ID
	case len(raw) > 0:
		return raw[0].ID
	}
	return ""
}

// InitialSelection returns the id selected when a session starts.
func InitialSelection(sorted, raw []model.EventRecord) string {
	if len(sorted) > 0 {
		return sorted[0].ID
	}
	if len(raw) > 0 {
		return raw[0].ID
	}
	return ""
}

// FindByID looks up an event by id.
func FindByID(events []model.EventRecord, id string) (model.EventRecord, bool) {
	for _, event := range events {
		if event.ID == id {
			return event, true
		}
	}
	return model.EventRecord{}, false
}

func containsID(events []model.EventRecord, id string) bool {
	_, ok := FindByID(events, id)
	return ok
}
