package ui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"localbite/internal/catalog"
	"localbite/internal/export"
	"localbite/internal/model"
	"localbite/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robfig/cron/v3"
)

// Options wires the root model to its collaborators.
type Options struct {
	Session       *session.Session
	DB            *sql.DB
	Logger        *slog.Logger
	CatalogPath   string
	ExportPath    string
	PrefsPath     string
	DashboardSort model.SavedSort

	// Refresh re-reads the catalog on a schedule when set.
	Refresh cron.Schedule
}

// Model is the root Bubble Tea model.
type Model struct {
	session     *session.Session
	db          *sql.DB
	logger      *slog.Logger
	catalogPath string
	exportPath  string
	prefsPath   string
	refresh     cron.Schedule

	screen      model.Screen
	authReturn  model.Screen
	pendingSave string
	mode        model.Mode
	gState      GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	// Screen models
	home      *HomeModel
	events    *EventsModel
	detail    *EventDetailModel
	dashboard *DashboardModel
	contact   *ContactModel
	auth      *AuthModel

	detailReturn model.Screen

	keys      KeyMap
	formKeys  FormKeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

var topLevelScreens = []model.Screen{
	model.ScreenHome,
	model.ScreenEvents,
	model.ScreenDashboard,
	model.ScreenContact,
}

var screenNames = map[model.Screen]string{
	model.ScreenHome:      "home",
	model.ScreenEvents:    "events",
	model.ScreenDashboard: "dashboard",
	model.ScreenContact:   "contact",
}

// New creates a new root model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	formKeys := DefaultFormKeyMap()
	prefs := loadUIPreferences(opts.PrefsPath, opts.DashboardSort)

	m := Model{
		session:     opts.Session,
		db:          opts.DB,
		logger:      logger,
		catalogPath: opts.CatalogPath,
		exportPath:  opts.ExportPath,
		prefsPath:   opts.PrefsPath,
		refresh:     opts.Refresh,
		screen:      model.ScreenHome,
		mode:        model.ModeNav,
		gState:      GStateIdle,
		keys:        DefaultKeyMap(),
		formKeys:    formKeys,
		prefs:       prefs,
		home:        NewHomeModel(opts.Session.Sorted()),
		events:      NewEventsModel(opts.Session),
		dashboard:   NewDashboardModel(opts.Session, prefs.DashboardSort),
		contact:     NewContactModel(opts.DB, formKeys),
		auth:        NewAuthModel(formKeys),
	}
	for screen, name := range screenNames {
		if name == prefs.LastScreen {
			m.screen = screen
		}
	}

	events, dashboard := m.events, m.dashboard
	opts.Session.Subscribe(func(state session.State) {
		events.Sync(state)
		dashboard.Sync(state)
	})
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.scheduleRefresh()
}

type catalogRefreshMsg struct{}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.logger.Error("operation failed", "error", msg.Err)
		return m, nil

	case catalogRefreshMsg:
		m.logger.Debug("scheduled catalog refresh", "path", m.catalogPath)
		return m, tea.Batch(reloadCatalogCmd(m.catalogPath), m.scheduleRefresh())

	case model.CatalogReloadedMsg:
		m.session.ReplaceCatalog(msg.Events)
		m.home.SetCatalog(m.session.Sorted())
		if m.detail != nil {
			m.detail = NewEventDetailModel(m.detail.ID(), m.session.Event)
		}
		m.error = ""
		m.info = fmt.Sprintf("Catalog reloaded: %d events", len(msg.Events))
		return m, nil

	case model.AuthSubmittedMsg:
		ctx := context.Background()
		m.mode = model.ModeNav
		m.screen = m.authReturn
		if err := m.session.SignIn(ctx, msg.User); err != nil {
			m.error = "Signed in, but the profile was not stored: " + err.Error()
			m.logger.Error("failed to persist user", "error", err)
		} else {
			m.error = ""
		}
		m.info = "Signed in as " + m.session.User().Name
		if id := m.pendingSave; id != "" {
			m.pendingSave = ""
			m.toggleSave(id)
		}
		return m, nil

	case model.SubmissionSavedMsg:
		m.contact.Reset(msg.Kind)
		m.mode = model.ModeNav
		m.error = ""
		if msg.Kind == model.SubmissionEvent {
			m.info = "Thanks! We received your event request."
		} else {
			m.info = "Thanks! We received your note and will be in touch."
		}
		m.logger.Info("submission stored", "id", msg.ID, "kind", msg.Kind)
		return m, nil

	case model.ItineraryExportedMsg:
		m.error = ""
		m.info = fmt.Sprintf("Exported %d events to %s", msg.Count, msg.Path)
		m.logger.Info("itinerary exported", "path", msg.Path, "events", msg.Count)
		return m, nil

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		if m.screen == model.ScreenAuth {
			m.screen = m.authReturn
			m.pendingSave = ""
		}
		return m, nil

	default:
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var content string
	var breadcrumbParts []string

	showTabs := m.screen != model.ScreenAuth
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	if m.error != "" {
		contentHeight--
	}
	if m.info != "" {
		contentHeight--
	}

	switch m.screen {
	case model.ScreenHome:
		breadcrumbParts = []string{"Home"}
		content = m.home.View(m.width, contentHeight, m.session.SavedCount(), m.session.User())
	case model.ScreenEvents:
		breadcrumbParts = []string{"Events"}
		content = m.events.View(m.width, contentHeight)
	case model.ScreenEventDetail:
		breadcrumbParts = []string{"Events", "Detail"}
		if m.detail != nil {
			breadcrumbParts = []string{"Events", m.detail.Title()}
			content = m.detail.View(m.width, contentHeight, m.session.IsSaved(m.detail.ID()))
		}
	case model.ScreenDashboard:
		breadcrumbParts = []string{"My Events"}
		content = m.dashboard.View(m.width, contentHeight)
	case model.ScreenContact:
		breadcrumbParts = []string{"Contact"}
		content = m.contact.View(m.width, contentHeight)
	case model.ScreenAuth:
		breadcrumbParts = []string{"Account"}
		content = m.auth.View(m.width, contentHeight, m.session.User())
	}

	header := renderHeader(breadcrumbParts, m.session.User(), m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(max(1, contentHeight)).
		MaxHeight(max(1, contentHeight)).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.session.SavedCount(), m.width))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTabs(screen model.Screen, savedCount int, width int) string {
	tabs := []struct {
		name   string
		screen model.Screen
	}{
		{"Home", model.ScreenHome},
		{"Events", model.ScreenEvents},
		{fmt.Sprintf("My Events (%d)", savedCount), model.ScreenDashboard},
		{"Contact", model.ScreenContact},
	}

	active := screen
	if screen == model.ScreenEventDetail {
		active = model.ScreenEvents
	}

	var tabStrings []string
	for _, tab := range tabs {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if active == tab.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(tab.name))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, user *model.User, width int) string {
	title := HeaderStyle.Render("localbite")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	account := "a  sign in"
	if user != nil {
		account = "● " + user.Name
	}
	right := BreadcrumbStyle.Render(account+"   "+time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenAuth {
		return m.handleAuthNav(msg)
	}

	// Handle "gg" state machine
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if list := m.currentList(); list != nil {
			list.JumpToTop()
		}
		return m, nil
	}
	m.gState = GStateIdle

	if list := m.currentList(); list != nil {
		switch {
		case key.Matches(msg, m.keys.Down):
			list.MoveDown()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			list.MoveUp()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			list.JumpToBottom()
			return m, nil
		case key.Matches(msg, m.keys.HalfPageDown):
			list.HalfPageDown(m.height / 2)
			return m, nil
		case key.Matches(msg, m.keys.HalfPageUp):
			list.HalfPageUp(m.height / 2)
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Home):
		m.switchScreen(model.ScreenHome)
		return m, nil
	case key.Matches(msg, m.keys.Events):
		m.switchScreen(model.ScreenEvents)
		return m, nil
	case key.Matches(msg, m.keys.Dashboard):
		m.switchScreen(model.ScreenDashboard)
		return m, nil
	case key.Matches(msg, m.keys.Contact):
		m.switchScreen(model.ScreenContact)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab) && m.screen != model.ScreenEventDetail:
		m.switchScreen(m.adjacentScreen(-1))
		return m, nil
	case key.Matches(msg, m.keys.NextTab) && m.screen != model.ScreenEventDetail:
		m.switchScreen(m.adjacentScreen(1))
		return m, nil
	case key.Matches(msg, m.keys.Account):
		m.openAuth()
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		m.redo()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.info = "Reloading catalog..."
		return m, reloadCatalogCmd(m.catalogPath)
	}

	switch m.screen {
	case model.ScreenHome:
		return m.handleHomeNav(msg)
	case model.ScreenEvents:
		return m.handleEventsNav(msg)
	case model.ScreenEventDetail:
		return m.handleEventDetailNav(msg)
	case model.ScreenDashboard:
		return m.handleDashboardNav(msg)
	case model.ScreenContact:
		return m.handleContactNav(msg)
	}
	return m, nil
}

func (m *Model) currentList() listController {
	switch m.screen {
	case model.ScreenHome:
		return m.home
	case model.ScreenEvents:
		return m.events
	case model.ScreenDashboard:
		return m.dashboard
	}
	return nil
}

func (m *Model) adjacentScreen(delta int) model.Screen {
	idx := 0
	for i, s := range topLevelScreens {
		if s == m.screen {
			idx = i
		}
	}
	n := len(topLevelScreens)
	return topLevelScreens[((idx+delta)%n+n)%n]
}

func (m *Model) switchScreen(screen model.Screen) {
	m.screen = screen
	m.info = ""
	if name, ok := screenNames[screen]; ok && name != m.prefs.LastScreen {
		m.prefs.LastScreen = name
		m.persistPrefs()
	}
}

func (m *Model) persistPrefs() {
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save ui preferences", "error", err)
	}
}

func (m *Model) openAuth() {
	if m.screen != model.ScreenAuth {
		m.authReturn = m.screen
	}
	m.screen = model.ScreenAuth
	if m.session.User() == nil {
		m.mode = model.ModeInsert
	}
}

func (m *Model) openDetail(id string) {
	m.detailReturn = m.screen
	m.detail = NewEventDetailModel(id, m.session.Event)
	m.screen = model.ScreenEventDetail
}

// toggleSave flips the saved state of id. Without a profile the auth overlay
// opens and the toggle is retried after sign-in.
func (m *Model) toggleSave(id string) {
	saved, err := m.session.ToggleSaved(context.Background(), id)
	if errors.Is(err, session.ErrSignInRequired) {
		m.pendingSave = id
		m.openAuth()
		m.info = "Sign in to save events"
		return
	}

	name := id
	if e, ok := m.session.Event(id); ok {
		name = e.Name
	}
	label := "saved " + name
	if !saved {
		label = "removed " + name
	}
	m.pushUndoAction(undoAction{label: label, eventID: id})

	if err != nil {
		m.error = "Saved events were not stored: " + err.Error()
		m.logger.Error("failed to persist saved events", "error", err)
		return
	}
	m.error = ""
	if saved {
		m.info = "Saved " + name + " (u to undo)"
	} else {
		m.info = "Removed " + name + " (u to undo)"
	}
}

func (m *Model) signOut() {
	m.clearHistory()
	if err := m.session.SignOut(context.Background()); err != nil {
		m.error = "Signed out, but storage was not updated: " + err.Error()
		m.logger.Error("failed to persist sign out", "error", err)
	} else {
		m.error = ""
	}
	m.info = "Signed out"
}

// handleInsertMode handles insert/edit mode input.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenEvents:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter", "esc":
				m.events.StopEditing()
				m.mode = model.ModeNav
				return m, nil
			}
		}
		return m, m.events.UpdateLocation(msg)
	case model.ScreenContact:
		return m, m.contact.Update(msg)
	case model.ScreenAuth:
		return m, m.auth.Update(msg)
	}
	return m, nil
}

func (m Model) handleHomeNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		if e, ok := m.home.Selected(); ok {
			m.openDetail(e.ID)
		}
	}
	return m, nil
}

func (m Model) handleEventsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Category):
		m.info = "Category: " + m.events.CycleCategory(1)
	case key.Matches(msg, m.keys.CategoryBack):
		m.info = "Category: " + m.events.CycleCategory(-1)
	case key.Matches(msg, m.keys.Date):
		m.info = "Date: " + m.events.CycleDate(1)
	case key.Matches(msg, m.keys.DateBack):
		m.info = "Date: " + m.events.CycleDate(-1)
	case key.Matches(msg, m.keys.Location):
		m.mode = model.ModeInsert
		return m, m.events.StartEditing()
	case key.Matches(msg, m.keys.ResetFilters):
		m.events.ResetFilters()
		m.info = "Filters cleared"
	case key.Matches(msg, m.keys.Save):
		if sel := m.events.Selected(); sel != nil {
			m.toggleSave(sel.ID)
		}
	case key.Matches(msg, m.keys.Select):
		if sel := m.events.Selected(); sel != nil {
			m.openDetail(sel.ID)
		}
	}
	return m, nil
}

func (m Model) handleEventDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = m.detailReturn
		m.detail = nil
	case key.Matches(msg, m.keys.Save):
		if m.detail != nil && m.detail.event != nil {
			m.toggleSave(m.detail.ID())
		}
	}
	return m, nil
}

func (m Model) handleDashboardNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SortSaved):
		order := m.dashboard.ToggleOrder()
		m.prefs.DashboardSort = order
		m.persistPrefs()
		m.info = "Sorted by " + string(order)
	case key.Matches(msg, m.keys.Save):
		if e, ok := m.dashboard.Selected(); ok {
			m.toggleSave(e.ID)
		}
	case key.Matches(msg, m.keys.Select):
		if e, ok := m.dashboard.Selected(); ok {
			m.openDetail(e.ID)
		}
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.SignOut):
		if m.session.User() != nil {
			m.signOut()
		}
	}
	return m, nil
}

func (m Model) handleContactNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.SwitchTab):
		m.contact.SwitchTab()
	case key.Matches(msg, m.keys.Select), msg.String() == "i":
		m.mode = model.ModeInsert
	}
	return m, nil
}

func (m Model) handleAuthNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SignOut):
		m.signOut()
		m.screen = m.authReturn
	case key.Matches(msg, m.keys.Back):
		m.screen = m.authReturn
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// Commands

func (m *Model) exportCmd() tea.Cmd {
	user := m.session.User()
	if user == nil {
		m.info = "Sign in to export your itinerary"
		return nil
	}
	events := append([]model.EventRecord(nil), m.dashboard.Events()...)
	if len(events) == 0 {
		m.info = "Nothing saved to export"
		return nil
	}
	path := m.exportPath
	return func() tea.Msg {
		if err := export.WriteICSFile(path, events, user); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ItineraryExportedMsg{Path: path, Count: len(events)}
	}
}

func reloadCatalogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		events, err := catalog.Load(path)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to reload catalog: %w", err)}
		}
		return model.CatalogReloadedMsg{Events: events}
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	now := time.Now()
	next := m.refresh.Next(now)
	if next.IsZero() {
		return nil
	}
	return tea.Tick(next.Sub(now), func(time.Time) tea.Msg {
		return catalogRefreshMsg{}
	})
}
