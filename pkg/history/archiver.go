package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eburon/orbit/pkg/session"
)

// Archiver mirrors finalized turns from a live turn log into the archive
// for one authenticated user.
//
// Writes are fire-and-forget relative to the live turn stream: the
// finalize transition has already committed in memory by the time the
// archive write runs, and a failed write is logged, never propagated. The
// session continues with history durability degraded.
type Archiver struct {
	store  *Store
	userID string

	wg sync.WaitGroup
}

// NewArchiver creates an archiver writing records for userID.
func NewArchiver(store *Store, userID string) *Archiver {
	return &Archiver{store: store, userID: userID}
}

// Attach registers the archiver as the log's finalize hook and installs
// the user's persisted history into the log, oldest first, all final.
// A read failure is logged and leaves the log as it was; the live session
// still works without its history.
func (a *Archiver) Attach(ctx context.Context, log *session.Log) {
	turns, err := a.store.Turns(ctx, a.userID)
	if err != nil {
		slog.Error("history: rehydration failed", "user", a.userID, "err", err)
	} else if len(turns) > 0 {
		log.SetTurns(turns)
	}
	log.OnFinalize(a.Archive)
}

// Archive persists one turn on a background goroutine. Non-final turns are
// ignored: only final turns are ever written to the archive.
func (a *Archiver) Archive(turn session.Turn) {
	if !turn.IsFinal {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if _, err := a.store.Append(context.Background(), a.userID, turn); err != nil {
			slog.Error("history: archive append failed", "user", a.userID, "role", turn.Role, "err", err)
		}
	}()
}

// Wait blocks until all in-flight archive writes have finished. Used at
// session end and in tests; already-finalized turns stay archived, an
// Open tail at session end is never written.
func (a *Archiver) Wait() {
	a.wg.Wait()
}

// Turns reads the user's archived history as final conversation turns.
func (a *Archiver) Turns(ctx context.Context) ([]session.Turn, error) {
	return a.store.Turns(ctx, a.userID)
}

// Clear deletes the user's archived records. The in-memory turn log is
// untouched; callers clear it separately if desired.
func (a *Archiver) Clear(ctx context.Context) error {
	return a.store.Clear(ctx, a.userID)
}
