package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/eburon/orbit/pkg/console"
	"github.com/eburon/orbit/pkg/history"
	"github.com/eburon/orbit/pkg/identity"
	"github.com/eburon/orbit/pkg/kv"
	"github.com/eburon/orbit/pkg/prompt"
	"github.com/eburon/orbit/pkg/session"
)

func newTestServer(t *testing.T, user identity.User) (*console.Server, *session.Log, *history.Archiver) {
	t.Helper()
	backend := kv.NewMemory()
	t.Cleanup(func() { backend.Close() })
	store := history.NewStore(backend)
	arch := history.NewArchiver(store, user.ID)
	log := session.NewLog()
	arch.Attach(context.Background(), log)
	return console.NewServer(user, session.NewSettings(), log, arch, 0), log, arch
}

func TestApplyCommands(t *testing.T) {
	srv, _, _ := newTestServer(t, identity.User{ID: "SI1234"})

	if err := srv.Apply(console.Command{Setting: "language1", Value: "French"}); err != nil {
		t.Fatalf("language1: %v", err)
	}
	if err := srv.Apply(console.Command{Setting: "topic", Value: "hotel check-in"}); err != nil {
		t.Fatalf("topic: %v", err)
	}
	if err := srv.Apply(console.Command{Setting: "language2", Value: prompt.Auto}); err == nil {
		t.Fatal("guest auto slot accepted")
	}
	if err := srv.Apply(console.Command{Setting: "bogus", Value: "x"}); err == nil {
		t.Fatal("unknown setting accepted")
	}
}

func TestPromptEditRequiresElevation(t *testing.T) {
	ordinary, _, _ := newTestServer(t, identity.User{ID: "SI1234"})
	if err := ordinary.Apply(console.Command{Setting: "systemPrompt", Value: "edited"}); err == nil {
		t.Fatal("ordinary user edited the prompt")
	}

	admin, _, _ := newTestServer(t, identity.User{ID: "SI0000", SuperAdmin: true})
	if err := admin.Apply(console.Command{Setting: "systemPrompt", Value: "edited"}); err != nil {
		t.Fatalf("elevated prompt edit: %v", err)
	}
}

func TestHTTPEndpoints(t *testing.T) {
	srv, log, _ := newTestServer(t, identity.User{ID: "SI1234"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	log.Begin(session.RoleUser, "live turn")
	log.Finalize("")

	resp, err := http.Get(ts.URL + "/api/session")
	if err != nil {
		t.Fatalf("GET session: %v", err)
	}
	var state console.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if state.User.ID != "SI1234" || len(state.Turns) != 1 {
		t.Fatalf("state = %+v", state)
	}

	// Config command round-trips and the response snapshot is fresh.
	body, _ := json.Marshal(console.Command{Setting: "language2", Value: "German"})
	resp, err = http.Post(ts.URL+"/api/config", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST config: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if state.Config.Language2 != "German" {
		t.Fatalf("config = %+v", state.Config)
	}
	if !strings.Contains(state.Config.SystemPrompt, "German") {
		t.Fatal("snapshot prompt not recomputed")
	}

	// Clearing history leaves the live log alone.
	resp, err = http.Post(ts.URL+"/api/history/clear", "application/json", nil)
	if err != nil {
		t.Fatalf("POST history/clear: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("history/clear status = %d", resp.StatusCode)
	}
	if log.Len() != 1 {
		t.Fatal("history clear emptied the live log")
	}
}

func TestWebsocketSnapshots(t *testing.T) {
	srv, log, _ := newTestServer(t, identity.User{ID: "SI1234"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	var state console.State
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	if len(state.Turns) != 0 {
		t.Fatalf("initial turns = %+v", state.Turns)
	}

	log.Begin(session.RoleAgent, "Hello")

	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("mutation snapshot: %v", err)
	}
	if len(state.Turns) != 1 || state.Turns[0].Text != "Hello" || !state.Streaming {
		t.Fatalf("snapshot = %+v", state)
	}
}
