package cli_test

import (
	"testing"

	"github.com/eburon/orbit/pkg/cli"
)

type record struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

func TestFilterFieldAccess(t *testing.T) {
	out, err := cli.Filter(".text", record{Role: "user", Text: "Hola"})
	if err != nil {
		t.Fatalf("Filter() = %v, want nil", err)
	}
	if len(out) != 1 || out[0] != "Hola" {
		t.Errorf("Filter() = %v, want [Hola]", out)
	}
}

func TestFilterSelect(t *testing.T) {
	records := []record{
		{Role: "user", Text: "Hello"},
		{Role: "agent", Text: "Hola"},
		{Role: "user", Text: "Thanks"},
	}
	out, err := cli.Filter(`.[] | select(.role == "user") | .text`, records)
	if err != nil {
		t.Fatalf("Filter() = %v, want nil", err)
	}
	if len(out) != 2 || out[0] != "Hello" || out[1] != "Thanks" {
		t.Errorf("Filter() = %v, want [Hello Thanks]", out)
	}
}

func TestFilterParseError(t *testing.T) {
	if _, err := cli.Filter(".[", nil); err == nil {
		t.Fatal("Filter() with bad expression = nil, want error")
	}
}

func TestFilterRuntimeError(t *testing.T) {
	if _, err := cli.Filter(".foo", "not an object"); err == nil {
		t.Fatal("Filter() indexing a string = nil, want error")
	}
}
