package ui

import (
	"context"
	"testing"

	"localbite/internal/model"
	"localbite/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func fill(f *form, values map[int]string) {
	for i, v := range values {
		f.fields[i].input.SetValue(v)
	}
}

func chooseOption(f *form, field int, option string) {
	for i, o := range f.fields[field].options {
		if o == option {
			f.fields[field].choice = i
		}
	}
}

func validSubmission() map[int]string {
	return map[int]string{
		submitName:        "Sunset Food Truck Rally",
		submitDate:        "Jun 1, 2025",
		submitTime:        "5:00 PM - 10:00 PM",
		submitLocation:    "Pier 7",
		submitCity:        "Portland, OR",
		submitURL:         "https://example.com/tickets",
		submitDescription: "Twenty trucks and a brass band.",
		submitContact:     "host@example.com",
	}
}

func TestContactFromForm(t *testing.T) {
	tests := []struct {
		name    string
		values  map[int]string
		wantErr string
	}{
		{
			name:   "valid",
			values: map[int]string{contactName: "Ana", contactEmail: "ana@example.com", contactMessage: "Hi"},
		},
		{
			name:    "missing name",
			values:  map[int]string{contactEmail: "ana@example.com", contactMessage: "Hi"},
			wantErr: "name is required",
		},
		{
			name:    "bad email",
			values:  map[int]string{contactName: "Ana", contactEmail: "not-an-email", contactMessage: "Hi"},
			wantErr: "email",
		},
		{
			name:    "missing message",
			values:  map[int]string{contactName: "Ana", contactEmail: "ana@example.com", contactMessage: "   "},
			wantErr: "message is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewContactModel(nil, DefaultFormKeyMap())
			fill(&m.contact, tt.values)

			msg, err := contactFromForm(&m.contact)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "Hi"}, msg)
		})
	}
}

func TestEventSubmissionFromForm(t *testing.T) {
	tests := []struct {
		name     string
		override map[int]string
		category string
		wantErr  string
	}{
		{name: "valid", category: string(model.CategoryStreetFood)},
		{name: "missing category", wantErr: "category is required"},
		{name: "bad date", override: map[int]string{submitDate: "someday"}, category: string(model.CategoryMarket), wantErr: "invalid date"},
		{name: "missing date", override: map[int]string{submitDate: ""}, category: string(model.CategoryMarket), wantErr: "date is required"},
		{name: "missing city", override: map[int]string{submitCity: ""}, category: string(model.CategoryMarket), wantErr: "city is required"},
		{name: "bad url", override: map[int]string{submitURL: "ftp://example.com"}, category: string(model.CategoryMarket), wantErr: "url"},
		{name: "bad contact", override: map[int]string{submitContact: "nobody"}, category: string(model.CategoryMarket), wantErr: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewContactModel(nil, DefaultFormKeyMap())
			values := validSubmission()
			for k, v := range tt.override {
				values[k] = v
			}
			fill(&m.submit, values)
			if tt.category != "" {
				chooseOption(&m.submit, submitCategory, tt.category)
			}

			sub, err := eventSubmissionFromForm(&m.submit)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "2025-06-01", sub.Date)
			require.Equal(t, model.CategoryStreetFood, sub.Category)
			require.Equal(t, "host@example.com", sub.ContactEmail)
		})
	}
}

func TestContactModel_SubmitStoresMessage(t *testing.T) {
	app := newTestApp(t)
	m := NewContactModel(app.db, DefaultFormKeyMap())

	// Invalid input stays on the form.
	require.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}))
	require.NotEmpty(t, m.error)

	fill(&m.contact, map[int]string{contactName: "Ana", contactEmail: "ana@example.com", contactMessage: "Love the markets"})
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg := cmd()
	saved, ok := msg.(model.SubmissionSavedMsg)
	require.True(t, ok, "got %T", msg)
	require.Equal(t, model.SubmissionContact, saved.Kind)

	subs, err := store.ListSubmissions(context.Background(), app.db)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, saved.ID, subs[0].ID)
	require.Equal(t, "ana@example.com", subs[0].Email)

	m.Reset(saved.Kind)
	require.Empty(t, m.contact.value(contactName))
}

func TestContactModel_SubmitEventThroughApp(t *testing.T) {
	app := newTestApp(t)
	app.keys(t, "4")
	require.Equal(t, model.ScreenContact, app.m.screen)

	app.send(t, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, tabSubmitEvent, app.m.contact.Tab())

	app.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, model.ModeInsert, app.m.mode)

	fill(&app.m.contact.submit, validSubmission())
	chooseOption(&app.m.contact.submit, submitCategory, string(model.CategoryTasting))

	cmd := app.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	app.send(t, cmd())
	require.Equal(t, model.ModeNav, app.m.mode)
	require.Equal(t, "Thanks! We received your event request.", app.m.info)
	require.Empty(t, app.m.contact.submit.value(submitName))

	subs, err := store.ListSubmissions(context.Background(), app.db)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, model.SubmissionEvent, subs[0].Kind)
	require.Contains(t, subs[0].Payload, "Tasting")
}

func TestForm_Navigation(t *testing.T) {
	f := newForm(DefaultFormKeyMap(),
		newTextField("One", "", 10),
		newSelectField("Pick", []string{"x", "y"}),
	)

	submit, _ := f.update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, submit)
	require.Equal(t, 1, f.focused)

	f.update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, "y", f.value(1))
	f.update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, "x", f.value(1))

	submit, _ = f.update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, submit)

	f.update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 0, f.focused)
	f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	require.Equal(t, "hi", f.value(0))

	f.reset()
	require.Empty(t, f.value(0))
	require.Empty(t, f.value(1))
	require.Equal(t, 0, f.focused)
}

func TestAuthModel_Submit(t *testing.T) {
	tests := []struct {
		name     string
		signIn   bool
		values   map[int]string
		wantUser model.User
		wantErr  string
	}{
		{
			name:     "sign up",
			values:   map[int]string{0: "Ana", 1: "ana@example.com", 2: "secret"},
			wantUser: model.User{Name: "Ana", Email: "ana@example.com"},
		},
		{
			name:     "sign in",
			signIn:   true,
			values:   map[int]string{0: "ana@example.com", 1: "secret"},
			wantUser: model.User{Email: "ana@example.com"},
		},
		{
			name:    "missing password",
			values:  map[int]string{0: "Ana", 1: "ana@example.com"},
			wantErr: "password is required",
		},
		{
			name:    "bad email",
			signIn:  true,
			values:  map[int]string{0: "ana", 1: "secret"},
			wantErr: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthModel(DefaultFormKeyMap())
			if tt.signIn {
				m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
				require.Equal(t, authSignIn, m.mode)
			}
			fill(m.active(), tt.values)

			cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
			if tt.wantErr != "" {
				require.Nil(t, cmd)
				require.Contains(t, m.error, tt.wantErr)
				return
			}
			require.NotNil(t, cmd)
			msg, ok := cmd().(model.AuthSubmittedMsg)
			require.True(t, ok)
			require.Equal(t, tt.wantUser, msg.User)
			require.Empty(t, m.signUp.value(1))
		})
	}
}
