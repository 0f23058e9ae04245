package ui

import (
	"fmt"
	"strings"

	"localbite/internal/catalog"
	"localbite/internal/model"
	"localbite/internal/session"
	"localbite/internal/util"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const detailPaneMinWidth = 96

// EventsModel is the discover screen: filter bar, the filtered list and the
// detail pane for the selected event. The session owns the selection; the
// cursor follows it through Sync.
type EventsModel struct {
	sess     *session.Session
	state    session.State
	location textinput.Model
	editing  bool
	listCursor
}

// NewEventsModel creates the events screen bound to sess.
func NewEventsModel(sess *session.Session) *EventsModel {
	in := textinput.New()
	in.Placeholder = "Search city, venue, or neighborhood"
	in.Prompt = ""
	in.CharLimit = 80
	in.TextStyle = TextStyle
	in.PlaceholderStyle = HelpDescStyle

	m := &EventsModel{sess: sess, location: in}
	m.Sync(sess.State())
	return m
}

// Sync adopts a new session snapshot.
func (m *EventsModel) Sync(state session.State) {
	m.state = state
	if !m.editing && m.location.Value() != state.Filters.LocationQuery {
		m.location.SetValue(state.Filters.LocationQuery)
	}
	idx := 0
	for i, e := range state.Filtered {
		if e.ID == state.SelectedID {
			idx = i
			break
		}
	}
	m.moveTo(idx, len(state.Filtered))
}

// Selected returns the reconciled selection, if any.
func (m *EventsModel) Selected() *model.EventRecord {
	return m.state.Selected
}

func (m *EventsModel) selectIndex(i int) {
	if i < 0 || i >= len(m.state.Filtered) {
		return
	}
	m.sess.Select(m.state.Filtered[i].ID)
}

func (m *EventsModel) MoveDown() { m.selectIndex(m.cursor + 1) }
func (m *EventsModel) MoveUp() { m.selectIndex(m.cursor - 1) }
func (m *EventsModel) JumpToTop() {
	m.selectIndex(0)
}
func (m *EventsModel) JumpToBottom() {
	m.selectIndex(len(m.state.Filtered) - 1)
}

// HalfPageDown moves down half a page.
func (m *EventsModel) HalfPageDown(pageSize int) {
	m.selectIndex(min(m.cursor+max(1, pageSize/2), len(m.state.Filtered)-1))
}

// HalfPageUp moves up half a page.
func (m *EventsModel) HalfPageUp(pageSize int) {
	m.selectIndex(max(m.cursor-max(1, pageSize/2), 0))
}

// CycleCategory steps through All and the fixed categories.
func (m *EventsModel) CycleCategory(delta int) string {
	options := categoryOptions()
	next := options[cycleIndex(options, m.state.Filters.Category, delta)]
	m.sess.SetCategory(next)
	return next
}

// CycleDate steps through All dates and the catalog dates.
func (m *EventsModel) CycleDate(delta int) string {
	if len(m.state.Dates) == 0 {
		return model.AllDates
	}
	next := m.state.Dates[cycleIndex(m.state.Dates, m.state.Filters.SelectedDate, delta)]
	m.sess.SetDate(next)
	return next
}

// ResetFilters clears every filter.
func (m *EventsModel) ResetFilters() {
	m.location.SetValue("")
	m.sess.SetFilters(model.DefaultFilters())
}

// StartEditing focuses the location input.
func (m *EventsModel) StartEditing() tea.Cmd {
	m.editing = true
	m.location.CursorEnd()
	return m.location.Focus()
}

// StopEditing blurs the location input, keeping the query.
func (m *EventsModel) StopEditing() {
	m.editing = false
	m.location.Blur()
}

// UpdateLocation feeds a message to the location input and applies the
// query live.
func (m *EventsModel) UpdateLocation(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	before := m.location.Value()
	m.location, cmd = m.location.Update(msg)
	if after := m.location.Value(); after != before {
		m.sess.SetLocationQuery(after)
	}
	return cmd
}

func categoryOptions() []string {
	options := make([]string, 0, len(model.Categories)+1)
	options = append(options, model.AllCategories)
	for _, c := range model.Categories {
		options = append(options, string(c))
	}
	return options
}

func cycleIndex(options []string, current string, delta int) int {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return ((idx+delta)%n + n) % n
}

// View renders the filter bar, list and detail pane.
func (m *EventsModel) View(width, height int) string {
	filterBar := m.renderFilterBar(width)
	listHeight := max(3, height-lipgloss.Height(filterBar)-1)

	if width < detailPaneMinWidth {
		return lipgloss.JoinVertical(lipgloss.Left, filterBar, m.renderList(width, listHeight))
	}

	listWidth := width * 11 / 20
	detailWidth := width - listWidth - 1
	var detail string
	if sel := m.state.Selected; sel != nil {
		detail = renderEventDetail(*sel, m.sess.IsSaved(sel.ID), detailWidth)
	} else {
		detail = PanelStyle.Width(max(10, detailWidth-4)).Render(HelpDescStyle.Render("No event selected. Adjust filters to see details."))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(listWidth, listHeight), " ", detail)
	return lipgloss.JoinVertical(lipgloss.Left, filterBar, body)
}

func (m *EventsModel) renderFilterBar(width int) string {
	f := m.state.Filters

	categories := LabelStyle.Render("Category ") + renderPills(categoryOptions(), f.Category)

	dateLabels := make([]string, 0, len(m.state.Dates))
	active := ""
	for _, d := range m.state.Dates {
		label := d
		if d != model.AllDates {
			label = catalog.PrettyDate(d)
		}
		if d == f.SelectedDate {
			active = label
		}
		dateLabels = append(dateLabels, label)
	}
	dates := LabelStyle.Render("Date     ") + renderPills(dateLabels, active)

	inputStyle := BorderStyle
	if m.editing {
		inputStyle = ActiveBorderStyle
	}
	location := LabelStyle.Render("Location ") + inputStyle.Width(min(48, max(20, width-16))).Render(m.location.View())

	bar := lipgloss.JoinVertical(lipgloss.Left, categories, dates, location)
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(bar)
}

func (m *EventsModel) renderList(width, height int) string {
	if len(m.state.Filtered) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No events match those filters yet.\nPress  r  to reset filters.")
	}

	widths := []int{3, max(16, width-3-14-16-4), 14, 16}
	header := renderTableRow([]string{"", "EVENT", "DATE", "CITY"}, widths, TableHeaderStyle)

	m.visible = max(1, height-3)
	m.clamp(len(m.state.Filtered))

	var rows []string
	for i := m.offset; i < len(m.state.Filtered) && i < m.offset+m.visible; i++ {
		e := m.state.Filtered[i]
		style := NormalRowStyle
		if i%2 == 1 {
			style = style.Background(ColorStripe)
		}
		if i == m.cursor {
			style = SelectedRowStyle
		}
		mark := " "
		if m.sess.IsSaved(e.ID) {
			mark = "★"
		}
		cells := []string{
			mark,
			util.TruncateString(e.Name, widths[1]-2),
			e.DatePretty,
			util.TruncateString(e.City, widths[3]-2),
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("Showing %d of %d events", len(m.state.Filtered), len(m.sess.Sorted())))
	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(rows, "\n"), status)
}
