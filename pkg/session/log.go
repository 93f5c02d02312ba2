package session

import (
	"slices"
	"sync"
	"time"
)

// Log is the ordered sequence of conversation turns for one session.
//
// The tail position is a two-state machine: Open (streaming, IsFinal=false)
// or Closed (IsFinal=true). At most the last turn may be Open; every
// earlier turn is final. Mutations that require an Open tail are silent
// no-ops when the tail is Closed or the log is empty, since upstream
// engine event ordering is not fully controllable here.
type Log struct {
	mu    sync.Mutex
	turns []Turn

	onFinalize []func(Turn)
	onChange   func()
}

// NewLog creates an empty turn log.
func NewLog() *Log {
	return &Log{}
}

// OnFinalize registers a hook invoked with a copy of each turn as it
// transitions to final. Hooks accumulate and fire in registration order,
// so the archive append-through and a display layer can both observe the
// same finalize. Hooks run outside the log's lock and may call back in.
func (l *Log) OnFinalize(fn func(Turn)) {
	l.mu.Lock()
	l.onFinalize = append(l.onFinalize, fn)
	l.mu.Unlock()
}

// OnChange registers a hook invoked after every observable mutation,
// used by the console gateway to broadcast snapshots. Runs outside the lock.
func (l *Log) OnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Begin appends a new Open turn. It is legal only when the log is empty or
// the tail is Closed; otherwise it is a no-op and returns false.
func (l *Log) Begin(role Role, text string) bool {
	l.mu.Lock()
	if l.openTailLocked() {
		l.mu.Unlock()
		return false
	}
	l.turns = append(l.turns, Turn{
		Timestamp: time.Now(),
		Role:      role,
		Text:      text,
	})
	changed := l.onChange
	l.mu.Unlock()
	notify(changed)
	return true
}

// Append concatenates delta onto the Open tail's text. No-op when there is
// no Open tail.
func (l *Log) Append(delta string) bool {
	return l.mutateOpen(func(t *Turn) {
		t.Text += delta
	})
}

// SetOpenText replaces the Open tail's text, for engines that re-send the
// whole partial transcript instead of a delta. No-op when there is no
// Open tail.
func (l *Log) SetOpenText(text string) bool {
	return l.mutateOpen(func(t *Turn) {
		t.Text = text
	})
}

// AddToolCalls attaches tool invocation requests to the Open tail.
func (l *Log) AddToolCalls(calls ...ToolCall) bool {
	return l.mutateOpen(func(t *Turn) {
		t.ToolUseRequest = append(t.ToolUseRequest, calls...)
	})
}

// AddToolResults attaches tool responses to the Open tail.
func (l *Log) AddToolResults(results ...ToolResult) bool {
	return l.mutateOpen(func(t *Turn) {
		t.ToolUseResponse = append(t.ToolUseResponse, results...)
	})
}

// AddGrounding attaches grounding citations to the Open tail.
func (l *Log) AddGrounding(chunks ...GroundingChunk) bool {
	return l.mutateOpen(func(t *Turn) {
		t.GroundingChunks = append(t.GroundingChunks, chunks...)
	})
}

// Finalize closes the Open tail. finalText, when non-empty, replaces the
// accumulated text with the engine's finalized version. The turn's
// timestamp is unchanged. Returns the closed turn and true on success; a
// no-op (no Open tail) returns false and leaves the log unchanged.
//
// The OnFinalize hooks fire after the transition commits, outside the lock.
func (l *Log) Finalize(finalText string) (Turn, bool) {
	l.mu.Lock()
	if !l.openTailLocked() {
		l.mu.Unlock()
		return Turn{}, false
	}
	t := &l.turns[len(l.turns)-1]
	if finalText != "" {
		t.Text = finalText
	}
	t.IsFinal = true
	closed := *t
	finalized := slices.Clone(l.onFinalize)
	changed := l.onChange
	l.mu.Unlock()

	for _, fn := range finalized {
		fn(closed)
	}
	notify(changed)
	return closed, true
}

// Turns returns a copy of the full turn sequence in chronological order.
func (l *Log) Turns() []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.turns)
}

// Len returns the number of turns in the log.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}

// Tail returns the most recent turn, if any.
func (l *Log) Tail() (Turn, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.turns) == 0 {
		return Turn{}, false
	}
	return l.turns[len(l.turns)-1], true
}

// Streaming reports whether the tail is Open. Only an Open tail may render
// a typing affordance; all Closed turns are static text.
func (l *Log) Streaming() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.openTailLocked()
}

// SetTurns replaces the whole sequence, used for history rehydration.
// The Open/Closed discipline restarts from the installed sequence.
func (l *Log) SetTurns(turns []Turn) {
	l.mu.Lock()
	l.turns = slices.Clone(turns)
	changed := l.onChange
	l.mu.Unlock()
	notify(changed)
}

// Clear empties the log. It does not touch the archive; callers clear
// persisted history separately.
func (l *Log) Clear() {
	l.SetTurns(nil)
}

// openTailLocked reports whether the tail exists and is Open.
// Callers must hold l.mu.
func (l *Log) openTailLocked() bool {
	return len(l.turns) > 0 && !l.turns[len(l.turns)-1].IsFinal
}

// mutateOpen applies fn to the Open tail, or no-ops returning false.
func (l *Log) mutateOpen(fn func(*Turn)) bool {
	l.mu.Lock()
	if !l.openTailLocked() {
		l.mu.Unlock()
		return false
	}
	fn(&l.turns[len(l.turns)-1])
	changed := l.onChange
	l.mu.Unlock()
	notify(changed)
	return true
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}
