package session

import (
	"context"
	"encoding/json"
	"fmt"

	"localbite/internal/model"
)

// Storage keys. Values are JSON documents replaced whole on every write.
const (
	KeyUser  = "localbite:user"
	KeySaved = "localbite:saved"
)

// Store is the durable key-value collaborator. A missing key is reported with
// ok == false, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// restore loads the profile and saved set. Values that fail to decode are
// logged and treated as absent.
func (s *Session) restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	raw, ok, err := s.store.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("failed to read stored user: %w", err)
	}
	if ok {
		var user *model.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Warn("ignoring unreadable stored user", "key", KeyUser, "error", err)
		} else {
			s.user = user
		}
	}

	raw, ok, err = s.store.Get(ctx, KeySaved)
	if err != nil {
		return fmt.Errorf("failed to read stored saved events: %w", err)
	}
	if ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			s.logger.Warn("ignoring unreadable stored saved events", "key", KeySaved, "error", err)
		} else {
			s.savedIDs = dedupe(ids)
		}
	}

	s.logger.Debug("session restored", "signed_in", s.user != nil, "saved", len(s.savedIDs))
	return nil
}

func (s *Session) persistUser(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if s.user == nil {
		if err := s.store.Delete(ctx, KeyUser); err != nil {
			return fmt.Errorf("failed to clear stored user: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

func (s *Session) persistSaved(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	ids := s.savedIDs
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode saved events: %w", err)
	}
	if err := s.store.Set(ctx, KeySaved, string(data)); err != nil {
		return fmt.Errorf("failed to store saved events: %w", err)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
