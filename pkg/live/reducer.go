package live

import (
	"encoding/json"

	"google.golang.org/genai"

	"github.com/eburon/orbit/pkg/session"
)

// reducer folds engine server messages into turn log mutations. Input
// transcription fragments become Staff ("user") turns, output
// transcription fragments become translated-response ("agent") turns.
//
// It runs on the session's single receive goroutine, so log mutations are
// applied strictly in arrival order.
type reducer struct {
	log *session.Log
}

// apply folds one server message into the log. It returns any tool calls
// the engine requested, for the caller to dispatch, and whether a turn
// close is still pending: when tool calls and TurnComplete share one
// message, the close is deferred so the dispatched results land on the
// turn they belong to, and the caller finalizes after dispatch.
func (r *reducer) apply(msg *genai.LiveServerMessage) (calls []session.ToolCall, pendingClose bool) {
	if msg == nil {
		return nil, false
	}

	if msg.ToolCall != nil {
		calls = convToolCalls(msg.ToolCall)
		if len(calls) > 0 {
			// Tool use belongs to the response turn; open one if needed.
			r.ensureOpen(session.RoleAgent)
			r.log.AddToolCalls(calls...)
		}
	}

	sc := msg.ServerContent
	if sc == nil {
		return calls, false
	}

	if in := sc.InputTranscription; in != nil {
		r.transcript(session.RoleUser, in.Text, in.Finished)
	}
	if out := sc.OutputTranscription; out != nil {
		r.transcript(session.RoleAgent, out.Text, out.Finished)
	}

	if gm := sc.GroundingMetadata; gm != nil {
		if chunks := convGrounding(gm); len(chunks) > 0 {
			r.ensureOpen(session.RoleAgent)
			r.log.AddGrounding(chunks...)
		}
	}

	// Both a completed and an interrupted engine turn close the open tail;
	// an interruption just leaves whatever text already streamed in.
	if sc.TurnComplete || sc.Interrupted {
		if len(calls) > 0 {
			return calls, true
		}
		r.log.Finalize("")
	}

	return calls, false
}

// closeTurn finalizes the open tail for a close deferred past dispatch.
func (r *reducer) closeTurn() {
	r.log.Finalize("")
}

// transcript merges one transcription fragment for a role. A fragment for
// a different role than the open tail closes that tail first, so a speaker
// change never interleaves text into the wrong turn.
func (r *reducer) transcript(role session.Role, delta string, finished bool) {
	if delta == "" && !finished {
		return
	}
	r.closeOther(role)
	switch {
	case r.log.Streaming():
		if delta != "" {
			r.log.Append(delta)
		}
	case delta != "":
		r.log.Begin(role, delta)
	default:
		// finished with no text and nothing open: nothing to close.
		return
	}
	if finished {
		r.log.Finalize("")
	}
}

// ensureOpen guarantees an Open tail for role, closing a differently
// attributed open tail first.
func (r *reducer) ensureOpen(role session.Role) {
	r.closeOther(role)
	if !r.log.Streaming() {
		r.log.Begin(role, "")
	}
}

// closeOther finalizes the open tail when it belongs to another role.
func (r *reducer) closeOther(role session.Role) {
	if !r.log.Streaming() {
		return
	}
	if tail, ok := r.log.Tail(); ok && tail.Role != role {
		r.log.Finalize("")
	}
}

// convToolCalls flattens an engine tool-call message into session values.
func convToolCalls(tc *genai.LiveServerToolCall) []session.ToolCall {
	calls := make([]session.ToolCall, 0, len(tc.FunctionCalls))
	for _, fc := range tc.FunctionCalls {
		if fc == nil {
			continue
		}
		var args json.RawMessage
		if len(fc.Args) > 0 {
			args, _ = json.Marshal(fc.Args)
		}
		calls = append(calls, session.ToolCall{
			ID:   fc.ID,
			Name: fc.Name,
			Args: args,
		})
	}
	return calls
}

// convGrounding extracts web citations from grounding metadata.
func convGrounding(gm *genai.GroundingMetadata) []session.GroundingChunk {
	var chunks []session.GroundingChunk
	for _, gc := range gm.GroundingChunks {
		if gc == nil || gc.Web == nil {
			continue
		}
		chunks = append(chunks, session.GroundingChunk{
			Web: &session.WebSource{URI: gc.Web.URI, Title: gc.Web.Title},
		})
	}
	return chunks
}
