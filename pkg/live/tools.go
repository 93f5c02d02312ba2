package live

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/kaptinlin/jsonrepair"
	"google.golang.org/genai"

	"github.com/eburon/orbit/pkg/session"
)

// Handler executes one tool invocation. The returned map is sent back to
// the engine as the function response payload.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Tool is a function the engine may call during a session.
type Tool struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
	Handler     Handler
}

// Registry holds the tools declared to the engine at connect time.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds or replaces a tool by name.
func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.Name]; !ok {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// declarations renders the registry as engine tool declarations, in
// registration order.
func (r *Registry) declarations() []*genai.Tool {
	if r.Len() == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  convSchema(t.Schema),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// Invoke runs the named tool with the call's arguments. Malformed argument
// JSON from the engine is repaired before unmarshalling.
func (r *Registry) Invoke(ctx context.Context, call session.ToolCall) (map[string]any, error) {
	if r == nil {
		return nil, fmt.Errorf("live: no tools registered")
	}
	t, ok := r.tools[call.Name]
	if !ok {
		return nil, fmt.Errorf("live: unknown tool %q", call.Name)
	}
	args, err := unmarshalArgs(call.Args)
	if err != nil {
		return nil, fmt.Errorf("live: tool %s arguments: %w", call.Name, err)
	}
	return t.Handler(ctx, args)
}

// unmarshalArgs decodes tool-call arguments, retrying through jsonrepair
// when the engine emits syntactically broken JSON.
func unmarshalArgs(data json.RawMessage) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var args map[string]any
	err := json.Unmarshal(data, &args)
	if err == nil {
		return args, nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return nil, rerr
		}
		if err := json.Unmarshal([]byte(fixed), &args); err != nil {
			return nil, err
		}
		return args, nil
	}
	return nil, err
}

// convSchema converts a jsonschema declaration to the engine's schema type.
func convSchema(schema *jsonschema.Schema) *genai.Schema {
	if schema == nil {
		return nil
	}

	enums := make([]string, 0, len(schema.Enum))
	for _, v := range schema.Enum {
		enums = append(enums, fmt.Sprintf("%v", v))
	}

	gs := genai.Schema{
		Format:      schema.Format,
		Description: schema.Description,
		Enum:        enums,
		Items:       convSchema(schema.Items),
		Required:    schema.Required,
	}
	if n := len(schema.Properties); n > 0 {
		gs.Properties = make(map[string]*genai.Schema, n)
		for k, prop := range schema.Properties {
			gs.Properties[k] = convSchema(prop)
		}
	}
	switch schema.Type {
	case "object":
		gs.Type = genai.TypeObject
	case "array":
		gs.Type = genai.TypeArray
	case "string":
		gs.Type = genai.TypeString
	case "number":
		gs.Type = genai.TypeNumber
	case "integer":
		gs.Type = genai.TypeInteger
	case "boolean":
		gs.Type = genai.TypeBoolean
	}
	return &gs
}
