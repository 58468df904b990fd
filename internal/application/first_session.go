package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

const (
	DefaultStorageGroup = "deepone.attribution"
	firstSessionKey     = "first_session_consumed"
)

type sessionMarker struct {
	ConsumedAt int64  `cbor:"consumed_at"`
	InstallID  string `cbor:"install_id"`
}

// FirstSessionStore tracks whether the first app session has been consumed.
// An absent marker means the first session is still pending. All
// read-modify-write sequences are serialized by mu.
type FirstSessionStore struct {
	store ports.SecureStore
	group string
	clock ports.Clock
	mu    sync.Mutex
}

func NewFirstSessionStore(store ports.SecureStore, group string, clock ports.Clock) *FirstSessionStore {
	if group == "" {
		group = DefaultStorageGroup
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &FirstSessionStore{store: store, group: group, clock: clock}
}

func (s *FirstSessionStore) Read(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked(ctx)
}

func (s *FirstSessionStore) MarkConsumed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.markLocked(ctx)
}

func (s *FirstSessionStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Delete(ctx, s.group, firstSessionKey)
	if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("delete first session marker: %w", err)
	}

	return nil
}

// ConsumeFirst returns the value observed before consuming it. Only one caller
// can observe true between resets. A failed write reports false so the first
// session is never delivered twice.
func (s *FirstSessionStore) ConsumeFirst(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	first, err := s.readLocked(ctx)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}

	if err := s.markLocked(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (s *FirstSessionStore) readLocked(ctx context.Context) (bool, error) {
	if _, err := s.store.Get(ctx, s.group, firstSessionKey); err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("read first session marker: %w", err)
	}

	return false, nil
}

func (s *FirstSessionStore) markLocked(ctx context.Context) error {
	payload, err := cbor.Marshal(sessionMarker{
		ConsumedAt: s.clock.Now().Unix(),
		InstallID:  uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("encode first session marker: %w", err)
	}

	if err := s.store.Put(ctx, s.group, firstSessionKey, payload); err != nil {
		return fmt.Errorf("write first session marker: %w", err)
	}

	return nil
}
