// Package export writes the saved itinerary in formats other tools can open.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"localbite/internal/catalog"
	"localbite/internal/model"
)

const productID = "-//LocalBite//Saved Itinerary//EN"

// BuildCalendar renders events as all-day VEVENTs. Events whose date does not
// parse are skipped.
func BuildCalendar(events []model.EventRecord, user *model.User, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	name := "LocalBite itinerary"
	if user != nil && user.Name != "" {
		name = fmt.Sprintf("LocalBite itinerary for %s", user.Name)
	}
	cal.SetXWRCalName(name)

	for _, e := range events {
		day := catalog.ParseDate(e.Date)
		if day.IsZero() {
			continue
		}

		ve := cal.AddEvent(e.ID + "@localbite")
		ve.SetDtStampTime(now.UTC())
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ve.SetSummary(e.Name)
		ve.SetLocation(joinNonEmpty(", ", e.Location, e.City))
		ve.SetDescription(describe(e))
		if e.TicketURL != "" {
			ve.SetURL(e.TicketURL)
		}
	}
	return cal
}

// WriteICS serializes events as an iCalendar document.
func WriteICS(w io.Writer, events []model.EventRecord, user *model.User) error {
	cal := BuildCalendar(events, user, time.Now())
	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to serialize itinerary: %w", err)
	}
	return nil
}

// WriteICSFile writes the itinerary to path, creating parent directories.
func WriteICSFile(path string, events []model.EventRecord, user *model.User) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteICS(f, events, user); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func describe(e model.EventRecord) string {
	var parts []string
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.Time != "" {
		parts = append(parts, "Time: "+e.Time)
	}
	if e.Price != "" {
		parts = append(parts, "Price: "+e.Price)
	}
	if e.Category != "" {
		parts = append(parts, "Category: "+string(e.Category))
	}
	return strings.Join(parts, "\n")
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
