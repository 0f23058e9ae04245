package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type listController interface {
	MoveDown()
	MoveUp()
	JumpToTop()
	JumpToBottom()
	HalfPageDown(pageSize int)
	HalfPageUp(pageSize int)
}

// listCursor tracks a cursor and scroll offset over a list of n rows.
type listCursor struct {
	cursor  int
	offset  int
	visible int
}

func (c *listCursor) window() int {
	if c.visible <= 0 {
		return 10
	}
	return c.visible
}

func (c *listCursor) clamp(n int) {
	if n == 0 {
		c.cursor = 0
		c.offset = 0
		return
	}
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.offset > c.cursor {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.window() {
		c.offset = c.cursor - c.window() + 1
	}
}

func (c *listCursor) moveTo(i, n int) {
	c.cursor = i
	c.clamp(n)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).MaxHeight(1).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func renderTableDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("─", width))
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + TextStyle.Render(value)
}

func renderPills(values []string, active string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == active {
			parts = append(parts, ActivePillStyle.Render(v))
		} else {
			parts = append(parts, PillStyle.Render(v))
		}
	}
	return strings.Join(parts, " ")
}
