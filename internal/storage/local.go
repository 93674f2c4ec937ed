package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage writes files to a single directory on local disk. Files are
// stored as <unix-ms>-<random hex><ext> and referenced as /uploads/<name>.
type LocalStorage struct {
	rootDir string
}

var _ Storage = (*LocalStorage)(nil)

func NewLocal(rootDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{rootDir: rootDir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("random filename suffix: %w", err)
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), filepath.Ext(filename))

	dest := filepath.Join(s.rootDir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return "/uploads/" + name, nil
}

func (s *LocalStorage) Delete(ctx context.Context, pathOrKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// pathOrKey is like /uploads/<name>; only the base name is meaningful.
	full := filepath.Join(s.rootDir, filepath.Base(pathOrKey))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(pathOrKey string) string {
	return pathOrKey
}

// Dir returns the directory files are written to, for wiring the static file
// route.
func (s *LocalStorage) Dir() string {
	return s.rootDir
}
