package session

import (
	"errors"
	"sync"

	"github.com/eburon/orbit/pkg/prompt"
)

// DefaultModel is the live translation model used when the config names none.
const DefaultModel = "gemini-2.5-flash-native-audio-preview-09-2025"

// ErrGuestAuto is returned when slot 2 is set to the auto-detect sentinel.
// Only the Staff slot may auto-detect.
var ErrGuestAuto = errors.New("session: guest language slot cannot be auto-detect")

// Config is an immutable snapshot of the session configuration.
//
// SystemPrompt is derived: outside of a manual override it is always the
// synthesizer output for (Language1, Language2, Topic).
type Config struct {
	Language1    string `json:"language1"`
	Language2    string `json:"language2"`
	Topic        string `json:"topic"`
	Voice1       string `json:"voice1"`
	Voice2       string `json:"voice2"`
	Model        string `json:"model"`
	SystemPrompt string `json:"systemPrompt"`
}

// Settings is the session configuration store. Every language or topic
// mutation re-derives the system prompt from the already-updated values in
// the same transition, so no caller can observe a prompt computed from
// stale inputs.
type Settings struct {
	mu       sync.Mutex
	cfg      Config
	onChange func(Config)
}

// NewSettings creates a settings store with the stock defaults: Staff slot
// auto-detects, Guest slot is English (US), and the prompt is pre-derived.
func NewSettings() *Settings {
	cfg := Config{
		Language1: prompt.DefaultLanguage1,
		Language2: prompt.DefaultLanguage2,
		Voice1:    prompt.DefaultVoice1,
		Voice2:    prompt.DefaultVoice2,
		Model:     DefaultModel,
	}
	cfg.SystemPrompt = prompt.Synthesize(cfg.Language1, cfg.Language2, cfg.Topic)
	return &Settings{cfg: cfg}
}

// OnChange registers a hook invoked with the new snapshot after every
// mutation. Runs outside the lock.
func (s *Settings) OnChange(fn func(Config)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Config returns the current snapshot.
func (s *Settings) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetLanguage1 sets the Staff language slot (the auto-detect sentinel is
// allowed) and re-derives the prompt.
func (s *Settings) SetLanguage1(v string) {
	s.mutate(func(c *Config) {
		c.Language1 = v
		c.SystemPrompt = prompt.Synthesize(c.Language1, c.Language2, c.Topic)
	})
}

// SetLanguage2 sets the Guest language slot and re-derives the prompt.
// The auto-detect sentinel is rejected and leaves the state unchanged.
func (s *Settings) SetLanguage2(v string) error {
	if v == prompt.Auto {
		return ErrGuestAuto
	}
	s.mutate(func(c *Config) {
		c.Language2 = v
		c.SystemPrompt = prompt.Synthesize(c.Language1, c.Language2, c.Topic)
	})
	return nil
}

// SetTopic sets the optional conversation topic and re-derives the prompt.
func (s *Settings) SetTopic(v string) {
	s.mutate(func(c *Config) {
		c.Topic = v
		c.SystemPrompt = prompt.Synthesize(c.Language1, c.Language2, c.Topic)
	})
}

// SetVoice1 sets the Staff voice. Voices do not affect the prompt.
func (s *Settings) SetVoice1(v string) {
	s.mutate(func(c *Config) { c.Voice1 = v })
}

// SetVoice2 sets the Guest voice.
func (s *Settings) SetVoice2(v string) {
	s.mutate(func(c *Config) { c.Voice2 = v })
}

// SetModel sets the live model identifier.
func (s *Settings) SetModel(v string) {
	s.mutate(func(c *Config) { c.Model = v })
}

// SetSystemPrompt hand-authors the instruction text. This exists for the
// elevated editing mode only. The override is ephemeral: the next
// language or topic mutation recomputes the prompt over it.
func (s *Settings) SetSystemPrompt(text string) {
	s.mutate(func(c *Config) { c.SystemPrompt = text })
}

func (s *Settings) mutate(fn func(*Config)) {
	s.mu.Lock()
	fn(&s.cfg)
	snap := s.cfg
	changed := s.onChange
	s.mu.Unlock()
	if changed != nil {
		changed(snap)
	}
}
