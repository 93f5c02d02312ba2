package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/eburon/orbit/pkg/history"
	"github.com/eburon/orbit/pkg/kv"
	"github.com/eburon/orbit/pkg/session"
)

func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	backend := kv.NewMemory()
	t.Cleanup(func() { backend.Close() })
	return history.NewStore(backend)
}

func finalTurn(role session.Role, text string, at time.Time) session.Turn {
	return session.Turn{Timestamp: at, Role: role, Text: text, IsFinal: true}
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now()

	turns := []session.Turn{
		finalTurn(session.RoleUser, "Goedemorgen", base),
		finalTurn(session.RoleAgent, "Good morning", base.Add(time.Second)),
		finalTurn(session.RoleUser, "Waar is de lift?", base.Add(2*time.Second)),
	}
	for _, turn := range turns {
		rec, err := s.Append(ctx, "SI1234", turn)
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if rec.ID == "" {
			t.Fatal("record has no ID")
		}
	}

	recs, err := s.List(ctx, "SI1234")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len(recs) = %d, want 3", len(recs))
	}
	for i, rec := range recs {
		if rec.Text != turns[i].Text || rec.Role != turns[i].Role {
			t.Fatalf("record %d = %+v, want %+v", i, rec, turns[i])
		}
		if i > 0 && recs[i-1].Timestamp >= rec.Timestamp {
			t.Fatal("records not ordered by timestamp ascending")
		}
	}
}

func TestAppendIdenticalTimestampsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	at := time.Now()

	// Two turns finalized with the same Begin nanosecond must both land.
	if _, err := s.Append(ctx, "SI1234", finalTurn(session.RoleUser, "first", at)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := s.Append(ctx, "SI1234", finalTurn(session.RoleAgent, "second", at)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	recs, err := s.List(ctx, "SI1234")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Text != "first" || recs[1].Text != "second" {
		t.Fatalf("records out of order: %+v", recs)
	}
	if recs[0].Timestamp >= recs[1].Timestamp {
		t.Fatal("key timestamps not strictly increasing")
	}
}

func TestAppendRejectsNonFinal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Append(ctx, "SI1234", session.Turn{Role: session.RoleUser, Text: "streaming..."})
	if err == nil {
		t.Fatal("non-final turn was archived")
	}
	recs, err := s.List(ctx, "SI1234")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("non-final turn persisted: %+v", recs)
	}
}

func TestTurnsRehydration(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now()

	s.Append(ctx, "SI1234", finalTurn(session.RoleUser, "eerste", base))
	s.Append(ctx, "SI1234", finalTurn(session.RoleAgent, "first", base.Add(time.Second)))

	turns, err := s.Turns(ctx, "SI1234")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len = %d, want 2", len(turns))
	}
	for _, turn := range turns {
		if !turn.IsFinal {
			t.Fatalf("rehydrated turn not final: %+v", turn)
		}
	}
	if turns[0].Text != "eerste" || turns[1].Text != "first" {
		t.Fatalf("order wrong: %q, %q", turns[0].Text, turns[1].Text)
	}
}

func TestClearIsPerUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now()

	s.Append(ctx, "SI1234", finalTurn(session.RoleUser, "mine", now))
	s.Append(ctx, "SI9999", finalTurn(session.RoleUser, "theirs", now))

	if err := s.Clear(ctx, "SI1234"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	mine, _ := s.List(ctx, "SI1234")
	if len(mine) != 0 {
		t.Fatalf("records survived clear: %+v", mine)
	}
	theirs, _ := s.List(ctx, "SI9999")
	if len(theirs) != 1 {
		t.Fatalf("other user's records affected: %+v", theirs)
	}
}

func TestUserSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Missing settings come back zero, not as an error.
	us, err := s.LoadSettings(ctx, "SI1234")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if us != (history.UserSettings{}) {
		t.Fatalf("expected zero settings, got %+v", us)
	}

	want := history.UserSettings{SystemPrompt: "custom", Voice1: "Puck", Voice2: "Kore"}
	if err := s.SaveSettings(ctx, "SI1234", want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	us, err = s.LoadSettings(ctx, "SI1234")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if us != want {
		t.Fatalf("settings = %+v, want %+v", us, want)
	}
}
