// Package datasource abstracts where exports are read from and where cleaned
// files are written to.
package datasource

import (
	"context"
	"io"
)

// Source yields the raw bytes of one export file.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Sink receives one cleaned file. Nothing is visible at the destination until
// Commit succeeds; Abort discards whatever was written.
type Sink interface {
	io.Writer
	Commit() error
	Abort() error
}
