// Package live connects a session to the streaming translation engine.
//
// At connect time the engine receives the synthesized instruction text,
// the configured voice, and the declared tools. The receive loop folds the
// resulting transcript fragment stream into the session's turn log; the
// log and archive layers below never see the engine API.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"

	"github.com/eburon/orbit/pkg/session"
)

// PCMMimeType is the audio format the engine expects from the microphone
// path: 16-bit little-endian PCM at 16 kHz.
const PCMMimeType = "audio/pcm;rate=16000"

// Client owns the engine API connection factory.
type Client struct {
	genai *genai.Client
}

// NewClient creates an engine client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("live: create client: %w", unwrapAPIError(err))
	}
	return &Client{genai: c}, nil
}

// Session is one open live translation stream. Receive-side processing
// runs on a single internal goroutine; Send* methods may be called from
// any goroutine.
type Session struct {
	live  *genai.Session
	red   *reducer
	tools *Registry

	done      chan struct{}
	closeOnce sync.Once
	errOnce   sync.Once
	err       error
}

// Connect opens a live session configured from cfg, streaming transcript
// fragments into log. tools may be nil.
//
// The prompt in cfg is passed verbatim: whatever the settings store
// currently derives (or an elevated operator hand-authored) is exactly
// what the engine sees.
func (c *Client) Connect(ctx context.Context, cfg session.Config, log *session.Log, tools *Registry) (*Session, error) {
	model := cfg.Model
	if model == "" {
		model = session.DefaultModel
	}
	voice := cfg.Voice1
	if voice == "" {
		voice = cfg.Voice2
	}

	lcfg := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemPrompt}},
		},
		InputAudioTranscription:  &genai.AudioTranscriptionConfig{},
		OutputAudioTranscription: &genai.AudioTranscriptionConfig{},
	}
	if voice != "" {
		lcfg.SpeechConfig = &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		}
	}
	if tools.Len() > 0 {
		lcfg.Tools = tools.declarations()
	}

	ls, err := c.genai.Live.Connect(ctx, model, lcfg)
	if err != nil {
		return nil, fmt.Errorf("live: connect: %w", unwrapAPIError(err))
	}

	s := &Session{
		live:  ls,
		red:   &reducer{log: log},
		tools: tools,
		done:  make(chan struct{}),
	}
	go s.receiveLoop()
	return s, nil
}

// SendText submits typed text as a completed client turn, for console use
// where no microphone is attached.
func (s *Session) SendText(text string) error {
	err := s.live.SendClientContent(genai.LiveClientContentInput{
		Turns: []*genai.Content{
			{Role: genai.RoleUser, Parts: []*genai.Part{{Text: text}}},
		},
	})
	if err != nil {
		return fmt.Errorf("live: send text: %w", unwrapAPIError(err))
	}
	return nil
}

// SendAudio streams one chunk of microphone PCM to the engine.
func (s *Session) SendAudio(data []byte) error {
	err := s.live.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{Data: data, MIMEType: PCMMimeType},
	})
	if err != nil {
		return fmt.Errorf("live: send audio: %w", unwrapAPIError(err))
	}
	return nil
}

// Done is closed when the receive loop has stopped, either from Close or
// an engine error.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err reports the receive-loop failure, if any, once Done is closed.
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Close shuts the stream down. Already-finalized turns and their archive
// writes are unaffected; an Open tail stays visible in the log until the
// caller clears it.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.live.Close()
		<-s.done
	})
	return err
}

func (s *Session) receiveLoop() {
	defer close(s.done)
	for {
		msg, err := s.live.Receive()
		if err != nil {
			s.errOnce.Do(func() { s.err = unwrapAPIError(err) })
			return
		}
		calls, pendingClose := s.red.apply(msg)
		for _, call := range calls {
			s.dispatch(call)
		}
		if pendingClose {
			s.red.closeTurn()
		}
	}
}

// dispatch runs one requested tool and returns its result to the engine.
// Tool failures are reported back to the model rather than ending the
// session.
func (s *Session) dispatch(call session.ToolCall) {
	resp, err := s.tools.Invoke(context.Background(), call)
	if err != nil {
		slog.Warn("live: tool invocation failed", "tool", call.Name, "err", err)
		resp = map[string]any{"error": err.Error()}
	}
	payload, _ := json.Marshal(resp)
	s.red.log.AddToolResults(session.ToolResult{ID: call.ID, Name: call.Name, Response: payload})

	sendErr := s.live.SendToolResponse(genai.LiveToolResponseInput{
		FunctionResponses: []*genai.FunctionResponse{
			{ID: call.ID, Name: call.Name, Response: resp},
		},
	})
	if sendErr != nil {
		slog.Error("live: send tool response failed", "tool", call.Name, "err", sendErr)
	}
}

// unwrapAPIError strips the gax wrapper so callers and logs see the
// underlying service error.
func unwrapAPIError(err error) error {
	if e, ok := err.(*apierror.APIError); ok {
		return e.Unwrap()
	}
	return err
}
