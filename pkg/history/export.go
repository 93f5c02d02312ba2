package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eburon/orbit/pkg/storage"
)

// ExportFormat selects how an exported transcript is rendered.
type ExportFormat string

const (
	// ExportText renders "15:04:05 role: text" lines.
	ExportText ExportFormat = "text"
	// ExportJSON renders the records as a JSON array.
	ExportJSON ExportFormat = "json"
)

// Export writes a user's archived history to dst at path. The export is a
// read-only projection; the archive itself is not modified.
func (s *Store) Export(ctx context.Context, userID string, dst storage.FileStore, path string, format ExportFormat) error {
	recs, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	w, err := dst.Write(ctx, path)
	if err != nil {
		return fmt.Errorf("history: open export %s: %w", path, err)
	}

	switch format {
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(recs)
	case ExportText, "":
		for _, rec := range recs {
			ts := time.Unix(0, rec.Timestamp).Format("2006-01-02 15:04:05")
			if _, werr := fmt.Fprintf(w, "%s %s: %s\n", ts, rec.Role, rec.Text); werr != nil {
				err = werr
				break
			}
		}
	default:
		err = fmt.Errorf("history: unsupported export format %q", format)
	}

	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("history: export %s: %w", path, err)
	}
	return nil
}
