package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemStore writes uploads under a base directory and returns the
// public path the file is served from. Filenames are generated by the caller
// and never taken from user input.
type FilesystemStore struct {
	baseDir    string
	publicBase string
}

func NewFilesystemStore(baseDir string) *FilesystemStore {
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &FilesystemStore{baseDir: baseDir, publicBase: "/uploads"}
}

func (s *FilesystemStore) Save(_ context.Context, category, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.publicBase + "/" + category + "/" + filename, nil
}
