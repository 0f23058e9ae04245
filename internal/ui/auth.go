package ui

import (
	"errors"

	"localbite/internal/model"
	"localbite/internal/util"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type authMode int

const (
	authSignUp authMode = iota
	authSignIn
)

// AuthModel is the sign-up / sign-in overlay. It only tags the session with
// a local profile; the password is required but never kept.
type AuthModel struct {
	mode   authMode
	signUp form
	signIn form
	keys   FormKeyMap
	error  string
}

// NewAuthModel creates the overlay in sign-up mode.
func NewAuthModel(keys FormKeyMap) *AuthModel {
	return &AuthModel{
		keys: keys,
		signUp: newForm(keys,
			newTextField("Name", "LocalBiter", 100),
			newTextField("Email *", "you@example.com", 200),
			newPasswordField("Password *"),
		),
		signIn: newForm(keys,
			newTextField("Email *", "you@example.com", 200),
			newPasswordField("Password *"),
		),
	}
}

// ToggleMode switches between sign-up and sign-in.
func (m *AuthModel) ToggleMode() {
	if m.mode == authSignUp {
		m.mode = authSignIn
	} else {
		m.mode = authSignUp
	}
	m.error = ""
}

func (m *AuthModel) active() *form {
	if m.mode == authSignIn {
		return &m.signIn
	}
	return &m.signUp
}

// Update handles input for the active mode.
func (m *AuthModel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			return func() tea.Msg { return model.FormCancelledMsg{} }
		case key.Matches(keyMsg, m.keys.SwitchTab):
			m.ToggleMode()
			return nil
		}
	}

	submit, cmd := m.active().update(msg)
	if !submit {
		return cmd
	}

	user, err := m.user()
	if err != nil {
		m.error = err.Error()
		return nil
	}
	m.error = ""
	m.signUp.reset()
	m.signIn.reset()
	return func() tea.Msg { return model.AuthSubmittedMsg{User: user} }
}

func (m *AuthModel) user() (model.User, error) {
	var user model.User
	var password string
	if m.mode == authSignUp {
		user = model.User{Name: m.signUp.value(0), Email: m.signUp.value(1)}
		password = m.signUp.value(2)
	} else {
		user = model.User{Email: m.signIn.value(0)}
		password = m.signIn.value(1)
	}
	if err := util.ValidateEmail(user.Email); err != nil {
		return user, err
	}
	if password == "" {
		return user, errors.New("password is required")
	}
	return user, nil
}

// View renders the overlay, or the signed-in card when user is set.
func (m *AuthModel) View(width, height int, user *model.User) string {
	cardWidth := min(72, max(30, width-6))

	var body string
	if user != nil {
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			EyebrowStyle.Render("LocalBite account"),
			LabelStyle.Render("Signed in"),
			"",
			TextStyle.Render("You are signed in as ")+LabelStyle.Render(user.Email)+TextStyle.Render("."),
			"",
			HelpKeyStyle.Render("O")+" "+HelpDescStyle.Render("sign out")+"   "+
				HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("keep browsing"),
		)
	} else {
		title := "Create your profile"
		switchHint := "Already have an account? ctrl+t to sign in"
		if m.mode == authSignIn {
			title = "Welcome back"
			switchHint = "New here? ctrl+t to create one"
		}
		parts := []string{
			EyebrowStyle.Render("LocalBite account"),
			LabelStyle.Render(title),
			"",
			m.active().view(cardWidth - 6),
			"",
			HelpDescStyle.Render(switchHint),
		}
		if m.error != "" {
			parts = append(parts, "", ErrorStyle.Render(m.error))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	card := ActivePanelStyle.Width(cardWidth).Render(body)
	return lipgloss.Place(width, max(1, height), lipgloss.Center, lipgloss.Top, card)
}
