package objectstore

import (
	"context"
	"io"
)

// ObjectStore is the minimal surface the upload pipeline needs from a
// remote bucket.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
}
