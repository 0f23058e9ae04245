package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"localbite/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed events.yaml
var defaultCatalog []byte

var (
	ErrDuplicateID     = errors.New("duplicate event id")
	ErrMissingID       = errors.New("event id is required")
	ErrInvalidDate     = errors.New("invalid event date")
	ErrUnknownCategory = errors.New("unknown event category")
)

type catalogFile struct {
	Events []model.EventRecord `yaml:"events"`
}

// Default returns the catalog bundled with the binary.
func Default() ([]model.EventRecord, error) {
	events, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundled catalog: %w", err)
	}
	return events, nil
}

// Load reads a YAML catalog file. An empty path returns the bundled catalog.
func Load(path string) ([]model.EventRecord, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	events, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return events, nil
}

// Parse decodes and validates a YAML catalog document. The events are returned
// in file order.
func Parse(data []byte) ([]model.EventRecord, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if err := Validate(file.Events); err != nil {
		return nil, err
	}
	for i := range file.Events {
		if file.Events[i].DatePretty == "" {
			file.Events[i].DatePretty = PrettyDate(file.Events[i].Date)
		}
	}
	return file.Events, nil
}

// Validate checks the catalog invariants: ids are present and unique, dates
// are calendar dates and categories are known.
func Validate(events []model.EventRecord) error {
	seen := make(map[string]bool, len(events))
	for i, e := range events {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return fmt.Errorf("event %d: %w", i, ErrMissingID)
		}
		if seen[id] {
			return fmt.Errorf("event %q: %w", id, ErrDuplicateID)
		}
		seen[id] = true
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			return fmt.Errorf("event %q date %q: %w", id, e.Date, ErrInvalidDate)
		}
		if !e.Category.Valid() {
			return fmt.Errorf("event %q category %q: %w", id, e.Category, ErrUnknownCategory)
		}
	}
	return nil
}

// PrettyDate renders a YYYY-MM-DD date as "Sat, Mar 9".
func PrettyDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}
