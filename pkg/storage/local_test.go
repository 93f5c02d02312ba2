package storage

import (
	"context"
	"io"
	"testing"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLocalWriteReadDelete(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	const path = "exports/SI1234/transcript.txt"
	const data = "user: Goedemorgen\nagent: Good morning\n"

	w, err := s.Write(ctx, path)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := io.WriteString(w, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	ok, err := s.Exists(ctx, path)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	r, err := s.Read(ctx, path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != data {
		t.Fatalf("Read = %q, want %q", got, data)
	}

	if err := s.Delete(ctx, path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ok, err = s.Exists(ctx, path)
	if err != nil || ok {
		t.Fatalf("Exists after delete = %v, %v", ok, err)
	}

	// Deleting again is not an error.
	if err := s.Delete(ctx, path); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}
