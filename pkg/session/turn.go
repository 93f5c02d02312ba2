// Package session holds the live state of a translation session: the
// configuration store (language pair, voices, topic, derived engine
// instructions) and the turn log that merges streaming transcript
// fragments into an ordered conversation.
//
// Both containers are safe for concurrent use; all mutation runs under a
// single mutex per container so the tail-turn discipline of the log and
// the derived-prompt invariant of the settings cannot be observed in a
// half-applied state.
package session

import (
	"encoding/json"
	"time"
)

// Role identifies who a conversation turn is attributed to.
type Role string

const (
	// RoleUser is Staff-originated speech.
	RoleUser Role = "user"
	// RoleAgent is Guest or translated-response speech.
	RoleAgent Role = "agent"
	// RoleSystem is reserved for session-level annotations.
	RoleSystem Role = "system"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleSystem:
		return true
	}
	return false
}

// ToolCall is a function invocation requested by the engine during a turn.
type ToolCall struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// ToolResult is the response sent back for a ToolCall.
type ToolResult struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Response json.RawMessage `json:"response,omitempty"`
}

// WebSource is a web citation attached to a grounded response.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// GroundingChunk is one grounding citation for a turn.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// Turn is one contiguous utterance-and-translation unit attributed to a
// role. A turn with IsFinal=false is still streaming; its text may grow or
// be replaced until it is finalized.
type Turn struct {
	Timestamp       time.Time        `json:"timestamp"`
	Role            Role             `json:"role"`
	Text            string           `json:"text"`
	IsFinal         bool             `json:"isFinal"`
	ToolUseRequest  []ToolCall       `json:"toolUseRequest,omitempty"`
	ToolUseResponse []ToolResult     `json:"toolUseResponse,omitempty"`
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}
