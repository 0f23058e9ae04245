package model

// Category is one of the fixed event categories.
type Category string

const (
	CategoryStreetFood Category = "Street Food"
	CategoryMarket     Category = "Market"
	CategoryFineDining Category = "Fine Dining"
	CategoryFestival   Category = "Festival"
	CategoryPopUp      Category = "Pop-up"
	CategoryWorkshop   Category = "Workshop"
	CategoryTasting    Category = "Tasting"
)

// Sentinel filter values meaning "no constraint".
const (
	AllCategories = "All"
	AllDates      = "All dates"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryStreetFood,
	CategoryMarket,
	CategoryFineDining,
	CategoryFestival,
	CategoryPopUp,
	CategoryWorkshop,
	CategoryTasting,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// EventRecord represents a single catalog event.
type EventRecord struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Date        string   `yaml:"date" json:"date"` // ISO 8601 date (YYYY-MM-DD), local
	DatePretty  string   `yaml:"date_pretty" json:"datePretty"`
	Category    Category `yaml:"category" json:"category"`
	Location    string   `yaml:"location" json:"location"`
	City        string   `yaml:"city" json:"city"`
	Description string   `yaml:"description" json:"description"`
	Price       string   `yaml:"price" json:"price"`
	Tags        []string `yaml:"tags" json:"tags"`
	TicketURL   string   `yaml:"ticket_url" json:"ticketUrl"`
	Time        string   `yaml:"time" json:"time"`
}

// User is the local, unvalidated profile used to tag saved events.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Filters holds the event list filter selection.
type Filters struct {
	Category      string
	LocationQuery string
	SelectedDate  string
}

// DefaultFilters returns filters that match every event.
func DefaultFilters() Filters {
	return Filters{
		Category:     AllCategories,
		SelectedDate: AllDates,
	}
}

// SavedSort is the display order of the saved-events dashboard.
type SavedSort string

const (
	SavedSortDate SavedSort = "date"
	SavedSortName SavedSort = "name"
)

// SubmissionKind distinguishes the two contact forms.
type SubmissionKind string

const (
	SubmissionContact SubmissionKind = "contact"
	SubmissionEvent   SubmissionKind = "event"
)

// ContactMessage represents data from the contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// EventSubmission represents data from the submit-an-event form.
type EventSubmission struct {
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Category     Category `json:"category"`
	URL          string   `json:"url"`
	Description  string   `json:"description"`
	ContactEmail string   `json:"contact"`
}
