package ports

import (
	"context"
	"io"
)

// FileStore persists uploaded delivery files and returns a path reference
// that can be stored on the order and served back to participants.
type FileStore interface {
	Store(ctx context.Context, filename string, r io.Reader) (string, error)
}
