package ui

import (
	"fmt"
	"strings"

	"localbite/internal/model"
	"localbite/internal/util"

	"github.com/charmbracelet/lipgloss"
)

const topPicks = 3

// HomeModel represents the landing screen: hero copy and the top picks.
type HomeModel struct {
	picks []model.EventRecord
	listCursor
}

// NewHomeModel creates the home screen over the canonically sorted catalog.
func NewHomeModel(sorted []model.EventRecord) *HomeModel {
	m := &HomeModel{}
	m.SetCatalog(sorted)
	return m
}

// SetCatalog refreshes the top picks.
func (m *HomeModel) SetCatalog(sorted []model.EventRecord) {
	n := min(topPicks, len(sorted))
	m.picks = append([]model.EventRecord(nil), sorted[:n]...)
	m.clamp(len(m.picks))
}

// Selected returns the highlighted pick.
func (m *HomeModel) Selected() (model.EventRecord, bool) {
	if len(m.picks) == 0 {
		return model.EventRecord{}, false
	}
	return m.picks[m.cursor], true
}

func (m *HomeModel) MoveDown() { m.moveTo(m.cursor+1, len(m.picks)) }
func (m *HomeModel) MoveUp() { m.moveTo(m.cursor-1, len(m.picks)) }
func (m *HomeModel) JumpToTop() { m.moveTo(0, len(m.picks)) }
func (m *HomeModel) JumpToBottom() { m.moveTo(len(m.picks)-1, len(m.picks)) }
func (m *HomeModel) HalfPageDown(int) { m.JumpToBottom() }
func (m *HomeModel) HalfPageUp(int) { m.JumpToTop() }

// View renders the hero, saved progress and top picks.
func (m *HomeModel) View(width, height int, savedCount int, user *model.User) string {
	cta := "a  create my free account"
	if user != nil || savedCount > 0 {
		cta = "3  view my saved events"
	}
	hero := lipgloss.JoinVertical(
		lipgloss.Left,
		EyebrowStyle.Render("LocalBite · Discover local food & events"),
		LabelStyle.Render("Never miss the tastiest things happening near you."),
		"",
		TextStyle.Width(max(20, width-8)).Render("Track food trucks, festivals, chef pop-ups and markets in one place. Build a personal itinerary with save-for-later."),
		"",
		HelpKeyStyle.Render(cta)+"   "+HelpDescStyle.Render("2  browse events"),
	)

	progress := renderProgress(savedCount, 24)
	savedLine := "No saved events yet"
	if savedCount > 0 {
		savedLine = util.Pluralize(savedCount, "event", "events") + " saved"
	}
	saved := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render("Save for later"),
		HelpDescStyle.Render("Press s on any listing to build your dashboard."),
		progress,
		HelpDescStyle.Render(savedLine),
	)

	var rows []string
	for i, e := range m.picks {
		line := fmt.Sprintf("%s  %s · %s", e.Name, e.DatePretty, e.City)
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		rows = append(rows, style.Render(util.TruncateString(line, max(10, width-24)))+" "+PillStyle.Render(string(e.Category)))
	}
	if len(rows) == 0 {
		rows = append(rows, EmptyStateStyle.Render("No events in the catalog."))
	}
	picks := lipgloss.JoinVertical(
		lipgloss.Left,
		EyebrowStyle.Render("This week"),
		LabelStyle.Render("Top picks"),
		"",
		strings.Join(rows, "\n"),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, hero, "", saved, "", picks)
	return PanelStyle.Width(max(20, width-4)).MaxHeight(max(1, height)).Render(body)
}

// renderProgress fills 20% per saved event, capped at full.
func renderProgress(savedCount, width int) string {
	pct := min(savedCount*20, 100)
	filled := width * pct / 100
	return lipgloss.NewStyle().Foreground(ColorAccent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorSurface).Render(strings.Repeat("░", width-filled))
}
