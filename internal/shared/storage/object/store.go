package object

import (
	"context"
	"io"
)

// ObjectStore archives binary objects. The analytics store row remains the
// canonical copy of a resume; implementations here only keep an archival
// duplicate, so callers treat failures as non-fatal.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
