package attachments

import (
	"context"
	"io"
	"time"
)

// BlobDriver defines how attachment binaries are stored and retrieved.
type BlobDriver interface {
	// Put writes the content under the given key.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Open returns a ReadCloser to stream the file back and its content type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Remove deletes the file. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// PublicURL returns a URL under which the file can be fetched.
	PublicURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
