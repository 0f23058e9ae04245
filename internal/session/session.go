// Package session owns the mutable state of one LocalBite session: the filter
// selection, the selected event, the signed-in profile and the saved set. All
// mutations go through Session methods, which recompute the derived views and
// notify subscribers before returning.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"localbite/internal/catalog"
	"localbite/internal/model"
)

// ErrSignInRequired is returned when a saved-set change is attempted without a
// signed-in profile.
var ErrSignInRequired = errors.New("sign in required")

// DefaultUserName is used when a profile is created without a name.
const DefaultUserName = "LocalBiter"

// State is a read-only snapshot of the session.
type State struct {
	Filters    model.Filters
	Filtered   []model.EventRecord
	Dates      []string
	SelectedID string
	Selected   *model.EventRecord
	SavedIDs   []string
	User       *model.User
}

type memoKey struct {
	filters model.Filters
	version int
}

// Session is the single owner of session state. It is not safe for concurrent
// use; callers drive it from one event loop.
type Session struct {
	store  Store
	logger *slog.Logger

	raw     []model.EventRecord
	sorted  []model.EventRecord
	dates   []string
	version int

	filters  model.Filters
	selected string
	savedIDs []string
	user     *model.User

	memo      memoKey
	memoValid bool
	filtered  []model.EventRecord

	subscribers map[int]func(State)
	nextSubID   int
}

// New creates a session over the given catalog and rehydrates the profile and
// saved set from store.
func New(ctx context.Context, events []model.EventRecord, store Store, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:       store,
		logger:      logger,
		filters:     model.DefaultFilters(),
		subscribers: make(map[int]func(State)),
	}
	s.setCatalog(events)
	s.selected = catalog.InitialSelection(s.sorted, s.raw)

	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	s.recompute()
	return s, nil
}

func (s *Session) setCatalog(events []model.EventRecord) {
	s.raw = append([]model.EventRecord(nil), events...)
	s.sorted = catalog.SortEvents(s.raw)
	s.dates = catalog.DistinctDates(s.raw)
	s.version++
}

// recompute refreshes the filtered set when its inputs changed and reconciles
// the selection against it.
func (s *Session) recompute() {
	key := memoKey{filters: s.filters, version: s.version}
	if !s.memoValid || key != s.memo {
		s.filtered = catalog.FilterEvents(s.sorted, s.filters)
		s.memo = key
		s.memoValid = true
	}
	s.selected = catalog.ReconcileSelection(s.selected, s.filtered, s.sorted, s.raw)
}

func (s *Session) changed() {
	s.recompute()
	if len(s.subscribers) == 0 {
		return
	}
	state := s.State()
	for _, fn := range s.subscribers {
		fn(state)
	}
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (s *Session) Subscribe(fn func(State)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		delete(s.subscribers, id)
	}
}

// State returns a snapshot of the current session.
func (s *Session) State() State {
	state := State{
		Filters:    s.filters,
		Filtered:   append([]model.EventRecord(nil), s.filtered...),
		Dates:      append([]string(nil), s.dates...),
		SelectedID: s.selected,
		SavedIDs:   append([]string(nil), s.savedIDs...),
	}
	if event, ok := catalog.FindByID(s.filtered, s.selected); ok {
		state.Selected = &event
	}
	if s.user != nil {
		u := *s.user
		state.User = &u
	}
	return state
}

// SetCategory sets the category filter.
func (s *Session) SetCategory(category string) {
	s.filters.Category = category
	s.logger.Debug("filter changed", "category", category)
	s.changed()
}

// SetLocationQuery sets the location substring filter.
func (s *Session) SetLocationQuery(query string) {
	s.filters.LocationQuery = query
	s.logger.Debug("filter changed", "location_query", query)
	s.changed()
}

// SetDate sets the date filter.
func (s *Session) SetDate(date string) {
	s.filters.SelectedDate = date
	s.logger.Debug("filter changed", "date", date)
	s.changed()
}

// SetFilters replaces all filters at once.
func (s *Session) SetFilters(filters model.Filters) {
	s.filters = filters
	s.changed()
}

// Select marks id as the selected event. Ids outside the filtered set are
// reconciled away immediately.
func (s *Session) Select(id string) {
	s.selected = id
	s.changed()
}

// ReplaceCatalog swaps the event catalog and re-derives every view from it.
func (s *Session) ReplaceCatalog(events []model.EventRecord) {
	s.setCatalog(events)
	s.logger.Info("catalog replaced", "events", len(events))
	s.changed()
}

// ToggleSaved flips whether id is in the saved set and reports the new
// membership. Without a signed-in user it returns ErrSignInRequired and leaves
// the saved set unchanged.
func (s *Session) ToggleSaved(ctx context.Context, id string) (bool, error) {
	if s.user == nil {
		return false, ErrSignInRequired
	}

	saved := true
	if idx := indexOf(s.savedIDs, id); idx >= 0 {
		next := make([]string, 0, len(s.savedIDs)-1)
		next = append(next, s.savedIDs[:idx]...)
		s.savedIDs = append(next, s.savedIDs[idx+1:]...)
		saved = false
	} else {
		s.savedIDs = append(append([]string(nil), s.savedIDs...), id)
	}
	s.logger.Debug("saved toggled", "event_id", id, "saved", saved)
	s.changed()

	if err := s.persistSaved(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

// SignIn sets the local profile. The name falls back to DefaultUserName.
func (s *Session) SignIn(ctx context.Context, user model.User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" {
		user.Name = DefaultUserName
	}
	s.user = &user
	s.logger.Info("signed in", "email", user.Email)
	s.changed()
	return s.persistUser(ctx)
}

// SignOut clears the profile and the saved set.
func (s *Session) SignOut(ctx context.Context) error {
	s.user = nil
	s.savedIDs = nil
	s.logger.Info("signed out")
	s.changed()

	if err := s.persistUser(ctx); err != nil {
		return err
	}
	return s.persistSaved(ctx)
}

// User returns the signed-in profile, or nil.
func (s *Session) User() *model.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Sorted returns the catalog in canonical order.
func (s *Session) Sorted() []model.EventRecord {
	return append([]model.EventRecord(nil), s.sorted...)
}

// Event looks up an event in the full catalog.
func (s *Session) Event(id string) (model.EventRecord, bool) {
	return catalog.FindByID(s.sorted, id)
}

// IsSaved reports whether id is in the saved set.
func (s *Session) IsSaved(id string) bool {
	return indexOf(s.savedIDs, id) >= 0
}

// SavedCount returns the size of the saved set.
func (s *Session) SavedCount() int {
	return len(s.savedIDs)
}

// SavedEvents returns the saved events present in the catalog, ordered for the
// dashboard. Saved ids with no catalog entry are skipped.
func (s *Session) SavedEvents(order model.SavedSort) []model.EventRecord {
	var events []model.EventRecord
	for _, event := range s.sorted {
		if s.IsSaved(event.ID) {
			events = append(events, event)
		}
	}
	if order == model.SavedSortName {
		return catalog.SortByName(events)
	}
	return catalog.SortByDate(events)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
