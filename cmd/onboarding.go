package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"localbite/internal/config"
)

func shouldRunOnboarding(settings *config.Settings) bool {
	if settings.OnboardingCompleted {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type onboardingStep int

const (
	stepCity onboardingStep = iota
	stepDone
)

type onboardingModel struct {
	step      onboardingStep
	cityInput textinput.Model
	city      string
	status    string
	width     int
	height    int
}

var (
	obColorMuted  = lipgloss.Color("#8C7F73")
	obColorText   = lipgloss.Color("#F2E8DC")
	obColorAccent = lipgloss.Color("#E07A5F")

	obTitleStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obHeaderStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(obColorMuted).
			Padding(1, 2)

	obInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorAccent).
			Padding(0, 1)

	obLabelStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obMutedStyle = lipgloss.NewStyle().
			Foreground(obColorMuted)

	obFooterStyle = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(obColorMuted)
)

func newOnboardingModel(current string) onboardingModel {
	in := textinput.New()
	in.Placeholder = "Portland, Austin, San Francisco..."
	in.CharLimit = 80
	in.Prompt = "city> "
	in.TextStyle = lipgloss.NewStyle().Foreground(obColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(obColorMuted)
	in.SetValue(current)
	in.Focus()

	return onboardingModel{step: stepCity, cityInput: in}
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.city = strings.TrimSpace(m.cityInput.Value())
			if m.city == "" {
				m.status = "No home city set. All events will be shown."
			} else {
				m.status = fmt.Sprintf("Filtering events to %s. Press r on the events screen to see every city.", m.city)
			}
			m.step = stepDone
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.city = ""
			m.status = "Setup skipped."
			m.step = stepDone
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.cityInput, cmd = m.cityInput.Update(msg)
	return m, cmd
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 24
	}

	left := "  " + obTitleStyle.Render("localbite") + " " + obMutedStyle.Render("› Welcome")
	right := obMutedStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	gap := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	header := obHeaderStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)

	footerText := "enter save  esc skip"
	if m.step == stepDone {
		footerText = "Setup complete"
	}
	footer := obFooterStyle.Width(width).Render(footerText)

	cardWidth := min(80, width-6)
	var body string
	if m.step == stepCity {
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			obLabelStyle.Render("Where do you usually eat?"),
			"",
			obMutedStyle.Render("LocalBite filters the event list by this city when it starts."),
			obMutedStyle.Render("Leave it empty to see every city."),
			"",
			obInputStyle.Width(max(30, cardWidth-8)).Render(m.cityInput.View()),
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, obLabelStyle.Render("All set"), "", obMutedStyle.Render(m.status))
	}
	card := obPanelStyle.Width(cardWidth).Render(body)
	content := lipgloss.Place(width, max(8, height-4), lipgloss.Center, lipgloss.Top, card)

	return lipgloss.NewStyle().
		Foreground(obColorText).
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

func runOnboarding(configPath string, settings *config.Settings) (*config.Settings, error) {
	prog := tea.NewProgram(newOnboardingModel(settings.HomeCity), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return nil, fmt.Errorf("unexpected onboarding model type")
	}
	return completeOnboarding(configPath, settings, m.city)
}

func completeOnboarding(configPath string, settings *config.Settings, city string) (*config.Settings, error) {
	next := *settings
	next.HomeCity = strings.TrimSpace(city)
	next.OnboardingCompleted = true
	if err := config.Save(configPath, &next); err != nil {
		return nil, err
	}
	return &next, nil
}
