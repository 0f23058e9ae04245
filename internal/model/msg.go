package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// CatalogReloadedMsg is sent when the catalog file has been read again.
type CatalogReloadedMsg struct {
	Events []EventRecord
}

// AuthSubmittedMsg is sent when the auth form is submitted.
type AuthSubmittedMsg struct {
	User User
}

// SubmissionSavedMsg is sent when a contact or event submission is stored.
type SubmissionSavedMsg struct {
	ID   string
	Kind SubmissionKind
}

// ItineraryExportedMsg is sent when the saved events were written as iCalendar.
type ItineraryExportedMsg struct {
	Path  string
	Count int
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// Screen represents different app screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenEvents
	ScreenEventDetail
	ScreenDashboard
	ScreenContact
	ScreenAuth
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
