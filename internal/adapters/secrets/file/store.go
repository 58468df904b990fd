package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
)

const (
	storeDirMode = 0o700
	valueFileMod = 0o600
)

// Store keeps one file per value under root/group/key.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecureStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, group string, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(group, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, storeDirMode); err != nil {
		return fmt.Errorf("create secure store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp value %s/%s: %w", group, key, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(valueFileMod); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp value %s/%s: %w", group, key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write value %s/%s: %w", group, key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp value %s/%s: %w", group, key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace value %s/%s: %w", group, key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, group string, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathFor(group, key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file value %s/%s: %w", group, key, domain.ErrSecretNotFound)
		}
		return nil, fmt.Errorf("read value %s/%s: %w", group, key, err)
	}

	return data, nil
}

func (s *Store) Delete(ctx context.Context, group string, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(group, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete value %s/%s: %w", group, key, err)
	}

	return nil
}

func (s *Store) pathFor(group string, key string) (string, error) {
	cleanGroup, err := cleanSegment("group", group)
	if err != nil {
		return "", err
	}
	cleanKey, err := cleanSegment("key", key)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.root, cleanGroup, cleanKey), nil
}

func cleanSegment(kind string, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("secure store %s is empty", kind)
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid secure store %s %q", kind, value)
	}

	return cleaned, nil
}
