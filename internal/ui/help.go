package ui

import (
	"strings"

	"localbite/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		if screen == model.ScreenEvents {
			return renderHelpLine([]string{
				helpKey("type", "filter by location"),
				helpKey("enter/esc", "done"),
			}, width)
		}
		return renderFormHelp(width)
	}

	switch screen {
	case model.ScreenHome:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			helpKey("enter", "details"),
			helpKey("1-4", "tabs"),
			helpKey("a", "account"),
			helpKey("?", "help"),
			helpKey("q", "quit"),
		}, width)
	case model.ScreenEvents:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			helpKey("c/C", "category"),
			helpKey("d/D", "date"),
			helpKey("/", "location"),
			helpKey("r", "reset"),
			helpKey("s", "save"),
			helpKey("enter", "details"),
			helpKey("u/ctrl+r", "undo/redo"),
		}, width)
	case model.ScreenEventDetail:
		return renderHelpLine([]string{
			helpKey("esc/b", "back"),
			helpKey("s", "save/unsave"),
		}, width)
	case model.ScreenDashboard:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			helpKey("o", "sort"),
			helpKey("s", "remove"),
			helpKey("x", "export .ics"),
			helpKey("enter", "details"),
			helpKey("a", "account"),
			helpKey("u/ctrl+r", "undo/redo"),
		}, width)
	case model.ScreenContact:
		return renderHelpLine([]string{
			helpKey("enter", "start typing"),
			helpKey("ctrl+t", "switch tab"),
			helpKey("1-4", "tabs"),
		}, width)
	case model.ScreenAuth:
		return renderHelpLine([]string{
			helpKey("O", "sign out"),
			helpKey("esc", "close"),
		}, width)
	default:
		return renderHelpLine([]string{
			helpKey("1-4", "tabs"),
			helpKey("q", "quit"),
		}, width)
	}
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("←/→", "choose option"),
		helpKey("ctrl+s", "submit"),
		helpKey("ctrl+t", "switch"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg / G", "Jump to top / bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"← / →", "Previous / next tab"},
			{"1 2 3 4", "Home, Events, My Events, Contact"},
			{"enter / l", "Open event details"},
			{"esc / b", "Back"},
			{"a", "Account (sign in / sign up)"},
			{"u / ctrl+r", "Undo / redo save toggles"},
			{"R", "Reload the event catalog"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}),
		titleSection("Events"),
		helpSection([]helpItem{
			{"c / C", "Next / previous category"},
			{"d / D", "Next / previous date"},
			{"/", "Filter by location (enter or esc to finish)"},
			{"r", "Reset all filters"},
			{"s", "Save or unsave the selected event"},
		}),
		titleSection("My Events"),
		helpSection([]helpItem{
			{"o", "Sort by date / name"},
			{"s", "Remove from saved"},
			{"x", "Export the itinerary as iCalendar"},
			{"O", "Sign out"},
		}),
		titleSection("Forms"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"← / →", "Choose an option"},
			{"ctrl+s", "Submit"},
			{"ctrl+t", "Switch tab or sign-in mode"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
