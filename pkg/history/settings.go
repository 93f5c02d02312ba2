package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/eburon/orbit/pkg/kv"
)

// UserSettings are the per-user overrides an elevated operator may persist
// alongside the archive: a hand-authored prompt and voice picks. Zero
// fields mean "no override".
type UserSettings struct {
	SystemPrompt string `json:"systemPrompt,omitempty" msgpack:"prompt,omitempty"`
	Voice1       string `json:"voice1,omitempty" msgpack:"v1,omitempty"`
	Voice2       string `json:"voice2,omitempty" msgpack:"v2,omitempty"`
}

func settingsKey(userID string) kv.Key {
	return kv.Key{"cfg", userID}
}

// SaveSettings upserts a user's settings overrides.
func (s *Store) SaveSettings(ctx context.Context, userID string, us UserSettings) error {
	data, err := msgpack.Marshal(us)
	if err != nil {
		return fmt.Errorf("history: encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, settingsKey(userID), data); err != nil {
		return fmt.Errorf("history: save settings: %w", err)
	}
	return nil
}

// LoadSettings reads a user's settings overrides. A user with none saved
// gets the zero value and no error.
func (s *Store) LoadSettings(ctx context.Context, userID string) (UserSettings, error) {
	data, err := s.kv.Get(ctx, settingsKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return UserSettings{}, nil
	}
	if err != nil {
		return UserSettings{}, fmt.Errorf("history: load settings: %w", err)
	}
	var us UserSettings
	if err := msgpack.Unmarshal(data, &us); err != nil {
		return UserSettings{}, fmt.Errorf("history: decode settings: %w", err)
	}
	return us, nil
}
