package storage

import "context"

// Storage abstracts where uploaded files land. Drivers implement this
// interface so application code is decoupled from any particular backend
// (local filesystem, S3, GCS, ...).
type Storage interface {
	// Save persists the bytes under a generated unique name derived from the
	// original filename's extension and returns the path/key that can later
	// be used to reference the file.
	Save(ctx context.Context, data []byte, filename string) (string, error)

	// Delete removes a stored file by its path/key. Deleting a missing file
	// is not an error.
	Delete(ctx context.Context, pathOrKey string) error

	// PublicURL returns the URL under which a stored path/key is served.
	PublicURL(pathOrKey string) string
}
