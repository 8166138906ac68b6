package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend keeps the blob in a single JSON file.
type FileBackend struct {
	Path string
}

func (b FileBackend) ReadBlob(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(b.Path) == "" {
		return nil, errors.New("file backend: empty path")
	}
	return os.ReadFile(b.Path)
}

func (b FileBackend) WriteBlob(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(b.Path) == "" {
		return errors.New("file backend: empty path")
	}
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(b.Path)+".*.tmp", b.Path, data, 0o644)
}

// atomicWriteFile writes through a unique temp file and renames it over path,
// so readers never observe a half-written blob.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
