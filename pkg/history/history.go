// Package history is the durable archive of finalized conversation turns.
//
// Records live in a kv.Store keyed by user and nanosecond timestamp, so a
// prefix scan returns one user's history in chronological order. Records
// are immutable once written; the only destructive operation is a per-user
// clear. The live turn log remains the source of truth for a session — the
// archive is an eventually-consistent mirror, and write failures leave the
// session running in a degraded, logged state.
package history

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/eburon/orbit/pkg/kv"
	"github.com/eburon/orbit/pkg/session"
)

// Record is the persisted projection of a finalized turn.
type Record struct {
	ID        string       `json:"id" msgpack:"id"`
	Role      session.Role `json:"role" msgpack:"role"`
	Text      string       `json:"text" msgpack:"text"`
	Timestamp int64        `json:"ts" msgpack:"ts"` // Unix nanoseconds
}

// Turn converts a record back into a final conversation turn.
func (r Record) Turn() session.Turn {
	return session.Turn{
		Timestamp: time.Unix(0, r.Timestamp),
		Role:      r.Role,
		Text:      r.Text,
		IsFinal:   true,
	}
}

// Store reads and writes history records for users.
type Store struct {
	kv kv.Store
}

// NewStore creates a history store over the given KV backend.
func NewStore(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// recordKey builds the KV key for one record.
// Format: "hist" + {userID} + {ts_ns}
func recordKey(userID string, ts int64) kv.Key {
	return kv.Key{"hist", userID, strconv.FormatInt(ts, 10)}
}

// userPrefix returns the prefix selecting all of a user's records.
func userPrefix(userID string) kv.Key {
	return kv.Key{"hist", userID}
}

// Append persists one finalized turn for a user and returns the stored
// record. Non-final turns are never persisted; passing one is an error.
func (s *Store) Append(ctx context.Context, userID string, turn session.Turn) (Record, error) {
	if !turn.IsFinal {
		return Record{}, fmt.Errorf("history: refusing to archive non-final turn for %s", userID)
	}
	ts := monotonicNano(turn.Timestamp)
	rec := Record{
		ID:        uuid.NewString(),
		Role:      turn.Role,
		Text:      turn.Text,
		Timestamp: ts,
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("history: encode record: %w", err)
	}
	if err := s.kv.Set(ctx, recordKey(userID, ts), data); err != nil {
		return Record{}, fmt.Errorf("history: append record: %w", err)
	}
	return rec, nil
}

// List returns all records for a user ordered by timestamp ascending.
// Entries that fail to decode are skipped.
func (s *Store) List(ctx context.Context, userID string) ([]Record, error) {
	var recs []Record
	for entry, err := range s.kv.List(ctx, userPrefix(userID)) {
		if err != nil {
			return nil, fmt.Errorf("history: list records: %w", err)
		}
		var rec Record
		if err := msgpack.Unmarshal(entry.Value, &rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Turns returns a user's archived history as final conversation turns,
// ready for installation into a live log via SetTurns.
func (s *Store) Turns(ctx context.Context, userID string) ([]session.Turn, error) {
	recs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	turns := make([]session.Turn, len(recs))
	for i, r := range recs {
		turns[i] = r.Turn()
	}
	return turns, nil
}

// Clear removes every record for a user. Other users' records are
// untouched, as is any in-memory turn log.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.kv.DeletePrefix(ctx, userPrefix(userID)); err != nil {
		return fmt.Errorf("history: clear records: %w", err)
	}
	return nil
}

// lastNano tracks the most recently issued key timestamp so two records
// carrying the same nanosecond never collide on a key.
var lastNano atomic.Int64

// monotonicNano maps a turn timestamp onto the key timeline: the stored
// value is the turn's own nanosecond when it is still ahead of every key
// issued so far, and one past the last issued key otherwise. A zero
// timestamp falls back to the wall clock.
func monotonicNano(t time.Time) int64 {
	now := t.UnixNano()
	if t.IsZero() {
		now = time.Now().UnixNano()
	}
	for {
		old := lastNano.Load()
		next := now
		if next <= old {
			next = old + 1
		}
		if lastNano.CompareAndSwap(old, next) {
			return next
		}
	}
}
