package ui

import (
	"fmt"
	"strings"

	"localbite/internal/catalog"
	"localbite/internal/model"
	"localbite/internal/session"
	"localbite/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// DashboardModel is the saved itinerary screen.
type DashboardModel struct {
	sess   *session.Session
	order  model.SavedSort
	events []model.EventRecord
	user   *model.User
	listCursor
}

// NewDashboardModel creates the dashboard bound to sess.
func NewDashboardModel(sess *session.Session, order model.SavedSort) *DashboardModel {
	m := &DashboardModel{sess: sess, order: order}
	m.Sync(sess.State())
	return m
}

// Sync re-reads the saved events after a session change.
func (m *DashboardModel) Sync(state session.State) {
	m.user = state.User
	m.events = m.sess.SavedEvents(m.order)
	m.clamp(len(m.events))
}

// Order returns the current sort order.
func (m *DashboardModel) Order() model.SavedSort {
	return m.order
}

// ToggleOrder switches between date and name order.
func (m *DashboardModel) ToggleOrder() model.SavedSort {
	if m.order == model.SavedSortName {
		m.order = model.SavedSortDate
	} else {
		m.order = model.SavedSortName
	}
	m.events = m.sess.SavedEvents(m.order)
	m.clamp(len(m.events))
	return m.order
}

// Events returns the saved events in display order.
func (m *DashboardModel) Events() []model.EventRecord {
	return m.events
}

// Selected returns the highlighted saved event.
func (m *DashboardModel) Selected() (model.EventRecord, bool) {
	if len(m.events) == 0 {
		return model.EventRecord{}, false
	}
	return m.events[m.cursor], true
}

// MoveDown moves the cursor down.
func (m *DashboardModel) MoveDown() { m.moveTo(m.cursor+1, len(m.events)) }

// MoveUp moves the cursor up.
func (m *DashboardModel) MoveUp() { m.moveTo(m.cursor-1, len(m.events)) }

// JumpToTop jumps to the first item.
func (m *DashboardModel) JumpToTop() { m.moveTo(0, len(m.events)) }

// JumpToBottom jumps to the last item.
func (m *DashboardModel) JumpToBottom() { m.moveTo(len(m.events)-1, len(m.events)) }

// HalfPageDown moves down half a page.
func (m *DashboardModel) HalfPageDown(pageSize int) {
	m.moveTo(m.cursor+max(1, pageSize/2), len(m.events))
}

// HalfPageUp moves up half a page.
func (m *DashboardModel) HalfPageUp(pageSize int) {
	m.moveTo(m.cursor-max(1, pageSize/2), len(m.events))
}

// savedCategories lists the distinct categories of events in order of first
// appearance.
func savedCategories(events []model.EventRecord) []string {
	seen := make(map[model.Category]bool)
	var out []string
	for _, e := range events {
		if seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, string(e.Category))
	}
	return out
}

// nextUp is the earliest saved event by date.
func nextUp(events []model.EventRecord) (model.EventRecord, bool) {
	byDate := catalog.SortByDate(events)
	if len(byDate) == 0 {
		return model.EventRecord{}, false
	}
	return byDate[0], true
}

// View renders the dashboard.
func (m *DashboardModel) View(width, height int) string {
	if m.user == nil {
		body := lipgloss.JoinVertical(
			lipgloss.Left,
			EyebrowStyle.Render("My Events"),
			LabelStyle.Render("Your saved itinerary"),
			"",
			HelpDescStyle.Render("Sign in to collect events, build your weekend plan, and get reminders."),
			"",
			HelpKeyStyle.Render("a")+" "+HelpDescStyle.Render("sign in to start saving"),
		)
		return PanelStyle.Width(max(20, width-4)).Render(body)
	}

	userChip := SuccessStyle.Render("● " + m.user.Name + " · " + m.user.Email)
	heading := lipgloss.JoinVertical(lipgloss.Left, EyebrowStyle.Render("My Events"), LabelStyle.Render("Your saved itinerary"), userChip)

	if len(m.events) == 0 {
		empty := HelpDescStyle.Render("You have not saved anything yet. Press s on any listing to track it.")
		return PanelStyle.Width(max(20, width-4)).Render(lipgloss.JoinVertical(lipgloss.Left, heading, "", empty))
	}

	categories := savedCategories(m.events)
	summary := []string{
		HelpDescStyle.Render(fmt.Sprintf("%s saved · %s",
			util.Pluralize(len(m.events), "event", "events"),
			util.Pluralize(len(categories), "category", "categories"))),
	}
	if next, ok := nextUp(m.events); ok {
		line := "Next up: " + LabelStyle.Render(next.Name) + HelpDescStyle.Render(" · "+next.DatePretty)
		if next.Time != "" {
			line += HelpDescStyle.Render(" at " + next.Time)
		}
		summary = append(summary, HelpDescStyle.Render(line))
	}
	sortLabels := []string{"Sort by date", "Sort by name"}
	active := sortLabels[0]
	if m.order == model.SavedSortName {
		active = sortLabels[1]
	}
	summary = append(summary, renderPills(sortLabels, active)+"  "+renderPills(categories, ""))

	widths := []int{max(16, width-14-16-16-8), 14, 16, 16}
	header := renderTableRow([]string{"EVENT", "DATE", "CATEGORY", "CITY"}, widths, TableHeaderStyle)

	top := lipgloss.JoinVertical(lipgloss.Left, heading, "", strings.Join(summary, "\n"), "")
	m.visible = max(1, height-lipgloss.Height(top)-4)
	m.clamp(len(m.events))

	var rows []string
	for i := m.offset; i < len(m.events) && i < m.offset+m.visible; i++ {
		e := m.events[i]
		style := NormalRowStyle
		if i%2 == 1 {
			style = style.Background(ColorStripe)
		}
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := []string{
			util.TruncateString(e.Name, widths[0]-2),
			e.DatePretty,
			string(e.Category),
			util.TruncateString(e.City, widths[3]-2),
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, header, strings.Join(rows, "\n"))
}
