package ui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"localbite/internal/model"
	"localbite/internal/store"
	"localbite/internal/util"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type contactTab int

const (
	tabContact contactTab = iota
	tabSubmitEvent
)

// Contact form field order.
const (
	contactName = iota
	contactEmail
	contactMessage
)

// Event submission field order.
const (
	submitName = iota
	submitDate
	submitTime
	submitLocation
	submitCity
	submitCategory
	submitURL
	submitDescription
	submitContact
)

// ContactModel is the contact screen with its two tabs.
type ContactModel struct {
	db      *sql.DB
	tab     contactTab
	contact form
	submit  form
	keys    FormKeyMap
	error   string
}

// NewContactModel creates the contact screen. Submissions are stored in db.
func NewContactModel(database *sql.DB, keys FormKeyMap) *ContactModel {
	categories := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		categories = append(categories, string(c))
	}

	return &ContactModel{
		db:   database,
		keys: keys,
		contact: newForm(keys,
			newTextField("Name *", "Your name", 100),
			newTextField("Email *", "you@example.com", 200),
			newTextField("Message *", "How can we help?", 2000),
		),
		submit: newForm(keys,
			newTextField("Event name *", "Sunset Food Truck Rally", 120),
			newTextField("Date *", "YYYY-MM-DD", 20),
			newTextField("Time *", "5:00 PM – 10:00 PM", 40),
			newTextField("Location *", "Venue or address", 200),
			newTextField("City *", "City, State", 100),
			newSelectField("Category *", categories),
			newTextField("Ticket or website URL *", "https://example.com/tickets", 300),
			newTextField("Description *", "Tell us about the experience, food, and highlights.", 2000),
			newTextField("Contact email *", "you@example.com", 200),
		),
	}
}

// Tab returns the active tab.
func (m *ContactModel) Tab() contactTab {
	return m.tab
}

// SwitchTab flips between the contact and submit-event tabs.
func (m *ContactModel) SwitchTab() {
	if m.tab == tabContact {
		m.tab = tabSubmitEvent
	} else {
		m.tab = tabContact
	}
	m.error = ""
}

// Reset clears the form that produced a stored submission.
func (m *ContactModel) Reset(kind model.SubmissionKind) {
	if kind == model.SubmissionContact {
		m.contact.reset()
	} else {
		m.submit.reset()
	}
	m.error = ""
}

// Update handles input for the active tab.
func (m *ContactModel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			return func() tea.Msg { return model.FormCancelledMsg{} }
		case key.Matches(keyMsg, m.keys.SwitchTab):
			m.SwitchTab()
			return nil
		}
	}

	active := &m.contact
	if m.tab == tabSubmitEvent {
		active = &m.submit
	}
	submit, cmd := active.update(msg)
	if !submit {
		return cmd
	}
	return m.save()
}

func (m *ContactModel) save() tea.Cmd {
	database := m.db
	if m.tab == tabContact {
		msg, err := contactFromForm(&m.contact)
		if err != nil {
			m.error = err.Error()
			return nil
		}
		m.error = ""
		return func() tea.Msg {
			id, err := store.SaveContact(context.Background(), database, msg)
			if err != nil {
				return model.ErrorMsg{Err: err}
			}
			return model.SubmissionSavedMsg{ID: id, Kind: model.SubmissionContact}
		}
	}

	sub, err := eventSubmissionFromForm(&m.submit)
	if err != nil {
		m.error = err.Error()
		return nil
	}
	m.error = ""
	return func() tea.Msg {
		id, err := store.SaveEventSubmission(context.Background(), database, sub)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.SubmissionSavedMsg{ID: id, Kind: model.SubmissionEvent}
	}
}

func contactFromForm(f *form) (model.ContactMessage, error) {
	msg := model.ContactMessage{
		Name:    f.value(contactName),
		Email:   f.value(contactEmail),
		Message: f.value(contactMessage),
	}
	if msg.Name == "" {
		return msg, errors.New("name is required")
	}
	if err := util.ValidateEmail(msg.Email); err != nil {
		return msg, err
	}
	if msg.Message == "" {
		return msg, errors.New("message is required")
	}
	return msg, nil
}

func eventSubmissionFromForm(f *form) (model.EventSubmission, error) {
	sub := model.EventSubmission{
		Name:         f.value(submitName),
		Time:         f.value(submitTime),
		Location:     f.value(submitLocation),
		City:         f.value(submitCity),
		Category:     model.Category(f.value(submitCategory)),
		URL:          f.value(submitURL),
		Description:  f.value(submitDescription),
		ContactEmail: f.value(submitContact),
	}

	required := []struct {
		label string
		value string
	}{
		{"event name", sub.Name},
		{"time", sub.Time},
		{"location", sub.Location},
		{"city", sub.City},
		{"ticket url", sub.URL},
		{"description", sub.Description},
	}
	for _, r := range required {
		if r.value == "" {
			return sub, fmt.Errorf("%s is required", r.label)
		}
	}

	date, err := util.ParseEventDateInput(f.value(submitDate))
	if err != nil {
		return sub, err
	}
	sub.Date = date

	if !sub.Category.Valid() {
		return sub, errors.New("category is required")
	}
	if err := util.ValidateURL(sub.URL); err != nil {
		return sub, err
	}
	if err := util.ValidateEmail(sub.ContactEmail); err != nil {
		return sub, err
	}
	return sub, nil
}

// View renders the tab bar and the active form.
func (m *ContactModel) View(width, height int) string {
	tabs := []string{"Contact", "Submit an event"}
	active := tabs[m.tab]
	tabBar := renderPills(tabs, active) + "  " + HelpDescStyle.Render("ctrl+t switch")

	var intro string
	var body string
	formWidth := min(80, max(30, width-8))
	if m.tab == tabContact {
		intro = "Tell us about your event, request a feature, or ask about sponsorships."
		body = m.contact.view(formWidth)
	} else {
		intro = "Tell us about your food event, market, or pop-up. Include dates, times, address, and your ticket URL."
		body = m.submit.view(formWidth)
	}

	parts := []string{
		EyebrowStyle.Render("Contact"),
		LabelStyle.Render("Get in touch or submit your next event"),
		"",
		tabBar,
		HelpDescStyle.Width(formWidth).Render(intro),
		"",
		body,
	}
	if m.error != "" {
		parts = append(parts, "", ErrorStyle.Render(m.error))
	}
	return lipgloss.NewStyle().Padding(0, 2).MaxHeight(max(1, height)).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
