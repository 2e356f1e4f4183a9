package ports

import "context"

// PackFilesProvider serves the raw content-pack files, so clients can
// mirror the exact definitions the server simulates with.
type PackFilesProvider interface {
	Index(ctx context.Context) ([]byte, error)
	File(ctx context.Context, path string) ([]byte, error)
}
