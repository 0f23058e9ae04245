package ui

import (
	"strings"
	"time"

	"localbite/internal/model"
	"localbite/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// EventDetailModel represents the single event screen.
type EventDetailModel struct {
	id    string
	event *model.EventRecord
}

// NewEventDetailModel resolves id against the full catalog. Unknown ids give
// the not-found state.
func NewEventDetailModel(id string, lookup func(string) (model.EventRecord, bool)) *EventDetailModel {
	m := &EventDetailModel{id: id}
	if e, ok := lookup(id); ok {
		m.event = &e
	}
	return m
}

// ID returns the requested event id.
func (m *EventDetailModel) ID() string {
	return m.id
}

// Title is the breadcrumb label.
func (m *EventDetailModel) Title() string {
	if m.event == nil {
		return "Not found"
	}
	return m.event.Name
}

// View renders the event, or the not-found state.
func (m *EventDetailModel) View(width, height int, saved bool) string {
	if m.event == nil {
		body := lipgloss.JoinVertical(
			lipgloss.Left,
			LabelStyle.Render("Event not found."),
			"",
			HelpDescStyle.Render("esc  back to events"),
		)
		return PanelStyle.Width(max(20, width-4)).Render(body)
	}

	shortcuts := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(HelpDescStyle.Render("s save  esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, shortcuts, renderEventDetail(*m.event, saved, width))
}

func renderEventDetail(e model.EventRecord, saved bool, width int) string {
	var sections []string

	when := e.DatePretty
	if e.Time != "" {
		when += " · " + e.Time
	}
	heading := lipgloss.JoinVertical(
		lipgloss.Left,
		EyebrowStyle.Render(string(e.Category)),
		LabelStyle.Render(e.Name),
		HelpDescStyle.Render(when),
		HelpDescStyle.Render(util.FormatDateRelative(e.Date, time.Now())),
	)
	sections = append(sections, heading)

	var fields []string
	fields = append(fields, renderField("Where", strings.Trim(e.Location+", "+e.City, ", ")))
	fields = append(fields, renderField("From", util.FormatPrice(e.Price)))
	fields = append(fields, renderField("Tickets", e.TicketURL))
	sections = append(sections, strings.Join(fields, "\n"))

	sections = append(sections, renderTableDivider(max(1, width-10)))

	if e.Description != "" {
		sections = append(sections, TextStyle.Width(max(10, width-10)).Render(e.Description))
	}
	if len(e.Tags) > 0 {
		sections = append(sections, renderPills(e.Tags, ""))
	}

	action := HelpKeyStyle.Render("s") + " " + HelpDescStyle.Render("save for later")
	if saved {
		action = SavedMarkStyle.Render("★ Saved") + "  " + HelpDescStyle.Render("s to remove")
	}
	sections = append(sections, action)

	return PanelStyle.Width(max(10, width-4)).Render(strings.Join(sections, "\n\n"))
}
