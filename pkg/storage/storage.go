// Package storage abstracts the destinations a transcript export can be
// written to: a local directory or an S3-compatible object store. The
// history export command picks a backend from configuration and streams
// the rendered transcript through the same FileStore interface either way.
package storage

import (
	"context"
	"io"
)

// FileStore is a minimal file-oriented store for exported transcripts.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading. A missing file yields an
	// error wrapping os.ErrNotExist.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing, truncating any existing
	// content and creating parents as needed. The caller must close the
	// returned WriteCloser to flush the data.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file. Deleting an absent file is not an
	// error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
