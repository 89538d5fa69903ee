package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/nikolayk812/storefront/internal/port"
)

const fileExt = ".json"

type fileStorage struct {
	dir string
}

// NewFileStorage stores each key as <dir>/<key>.json. The directory is created if missing.
func NewFileStorage(dir string) (port.CartStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &fileStorage{dir: dir}, nil
}

func (s *fileStorage) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, port.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return payload, nil
}

func (s *fileStorage) Save(ctx context.Context, key string, payload []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// readers never observe a half-written cart
	if err := atomic.WriteFile(path, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("atomic.WriteFile: %w", err)
	}

	return nil
}

func (s *fileStorage) Delete(ctx context.Context, key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("os.Remove: %w", err)
	}

	return true, nil
}

func (s *fileStorage) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key is empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("key[%s] is not a valid file name", key)
	}

	return filepath.Join(s.dir, key+fileExt), nil
}
