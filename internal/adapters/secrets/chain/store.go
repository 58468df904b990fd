package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/deeponelabs/deepone-go/internal/adapters/secrets/file"
	passstore "github.com/deeponelabs/deepone-go/internal/adapters/secrets/pass"
	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
)

// Store writes to primary and falls back when it fails. Reads consult the
// fallback when primary fails or has no value, and deletes clear both so a
// value written during a primary outage cannot resurface.
type Store struct {
	primary  ports.SecureStore
	fallback ports.SecureStore
}

var _ ports.SecureStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secure store is nil")
	errNilFallbackStore = errors.New("fallback secure store is nil")
)

func NewStore(primary ports.SecureStore, fallback ports.SecureStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecureStore, fallback ports.SecureStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(passPrefix string, fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(passPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, group string, key string, value []byte) error {
	err := s.primary.Put(ctx, group, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, group, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, group string, key string) ([]byte, error) {
	value, err := s.primary.Get(ctx, group, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return nil, err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, group, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	if errors.Is(err, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return nil, fmt.Errorf("%s/%s: %w", group, key, domain.ErrSecretNotFound)
	}

	return nil, fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, group string, key string) error {
	err := s.primary.Delete(ctx, group, key)
	if err != nil && shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, group, key)
	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	case fallbackErr == nil:
		return fmt.Errorf("primary backend delete failed: %w", err)
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
