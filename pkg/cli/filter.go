package cli

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Filter applies a jq expression to a result value and returns the emitted
// values. The value is round-tripped through JSON so struct results work
// with ordinary jq field access.
func Filter(expr string, value any) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("cli: parse filter %q: %w", expr, err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cli: encode for filter: %w", err)
	}
	var plain any
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("cli: decode for filter: %w", err)
	}

	var out []any
	iter := query.Run(plain)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("cli: filter: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}
