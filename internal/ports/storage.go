package ports

import "context"

// FileStore persists uploaded documents and photos and returns the public
// path the stored file is served under.
type FileStore interface {
	Save(ctx context.Context, category, filename string, data []byte) (string, error)
}
