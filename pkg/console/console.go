// Package console exposes the session to a UI shell: a localhost HTTP API
// for reading state and issuing commands, and a websocket stream that
// pushes a fresh snapshot after every observable mutation.
//
// The console is a read/command surface only. All state lives in the
// session and history packages; a console client dropping off or lagging
// never affects the live turn stream.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/eburon/orbit/pkg/history"
	"github.com/eburon/orbit/pkg/identity"
	"github.com/eburon/orbit/pkg/session"
)

// State is the full snapshot pushed to console clients.
type State struct {
	User      identity.User  `json:"user"`
	Config    session.Config `json:"config"`
	Turns     []session.Turn `json:"turns"`
	Streaming bool           `json:"streaming"`
}

// Command is a mutation request from a console client.
type Command struct {
	// Setting is one of: language1, language2, topic, voice1, voice2,
	// model, systemPrompt.
	Setting string `json:"setting"`
	Value   string `json:"value"`
}

// Server serves the operator console for one authenticated session.
// It binds to localhost only.
type Server struct {
	user     identity.User
	settings *session.Settings
	log      *session.Log
	archiver *history.Archiver
	addr     string

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[chan State]struct{}

	srv *http.Server
}

// NewServer creates a console server for the signed-in user. Snapshots are
// broadcast whenever the settings store or turn log changes.
func NewServer(user identity.User, settings *session.Settings, log *session.Log, archiver *history.Archiver, port int) *Server {
	s := &Server{
		user:     user,
		settings: settings,
		log:      log,
		archiver: archiver,
		addr:     fmt.Sprintf("127.0.0.1:%d", port),
		clients:  make(map[chan State]struct{}),
	}
	settings.OnChange(func(session.Config) { s.broadcast() })
	log.OnChange(s.broadcast)
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// Handler builds the console HTTP mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("POST /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("POST /api/history/clear", s.handleHistoryClear)
	mux.HandleFunc("POST /api/turns/clear", s.handleTurnsClear)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

// ListenAndServe runs the console until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.srv = &http.Server{Addr: s.addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()
	slog.Info("console: listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		s.srv.Shutdown(context.Background())
		return nil
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// snapshot assembles the current State.
func (s *Server) snapshot() State {
	return State{
		User:      s.user,
		Config:    s.settings.Config(),
		Turns:     s.log.Turns(),
		Streaming: s.log.Streaming(),
	}
}

// broadcast pushes the current snapshot to all websocket clients,
// dropping it for clients that are not keeping up.
func (s *Server) broadcast() {
	state := s.snapshot()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- state:
		default:
			// Drop if client is slow; the next snapshot supersedes it.
		}
	}
}

// Apply executes one configuration command, enforcing the elevation gate
// for manual prompt editing.
func (s *Server) Apply(cmd Command) error {
	switch cmd.Setting {
	case "language1":
		s.settings.SetLanguage1(cmd.Value)
	case "language2":
		return s.settings.SetLanguage2(cmd.Value)
	case "topic":
		s.settings.SetTopic(cmd.Value)
	case "voice1":
		s.settings.SetVoice1(cmd.Value)
	case "voice2":
		s.settings.SetVoice2(cmd.Value)
	case "model":
		s.settings.SetModel(cmd.Value)
	case "systemPrompt":
		if !s.user.SuperAdmin {
			return fmt.Errorf("console: manual prompt editing requires elevation")
		}
		s.settings.SetSystemPrompt(cmd.Value)
	default:
		return fmt.Errorf("console: unknown setting %q", cmd.Setting)
	}
	return nil
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot())
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Apply(cmd); err != nil {
		status := http.StatusBadRequest
		if cmd.Setting == "systemPrompt" {
			status = http.StatusForbidden
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, s.snapshot())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	turns, err := s.archiver.Turns(r.Context())
	if err != nil {
		// Degraded mode: the live session still works without history.
		slog.Error("console: history read failed", "err", err)
		http.Error(w, "history unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, turns)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := s.archiver.Clear(r.Context()); err != nil {
		slog.Error("console: history clear failed", "err", err)
		http.Error(w, "clear failed", http.StatusServiceUnavailable)
		return
	}
	// The live turn log is deliberately untouched.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTurnsClear(w http.ResponseWriter, r *http.Request) {
	s.log.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("console: websocket upgrade failed", "err", err)
		return
	}

	ch := make(chan State, 8)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
		conn.Close()
	}()

	// Initial snapshot so a client does not wait for the next mutation.
	if err := conn.WriteJSON(s.snapshot()); err != nil {
		return
	}
	for state := range ch {
		if err := conn.WriteJSON(state); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("console: write response failed", "err", err)
	}
}
