package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports/mocks"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFirstSessionStoreConsumeFirstOnlyOnce(t *testing.T) {
	ctx := context.Background()
	sessions := NewFirstSessionStore(newMemoryStore(), "", fixedClock{now: time.Unix(1700000000, 0)})

	first, err := sessions.Read(ctx)
	require.NoError(t, err)
	assert.True(t, first)

	consumed, err := sessions.ConsumeFirst(ctx)
	require.NoError(t, err)
	assert.True(t, consumed)

	consumed, err = sessions.ConsumeFirst(ctx)
	require.NoError(t, err)
	assert.False(t, consumed)

	first, err = sessions.Read(ctx)
	require.NoError(t, err)
	assert.False(t, first)
}

func TestFirstSessionStoreConcurrentConsumersSeeOneTrue(t *testing.T) {
	ctx := context.Background()
	sessions := NewFirstSessionStore(newMemoryStore(), "", nil)

	var trues atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := sessions.ConsumeFirst(ctx)
			if err == nil && first {
				trues.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), trues.Load())
}

func TestFirstSessionStoreResetRestoresFirstSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewFirstSessionStore(newMemoryStore(), "custom.group", nil)

	require.NoError(t, sessions.MarkConsumed(ctx))
	first, err := sessions.Read(ctx)
	require.NoError(t, err)
	assert.False(t, first)

	require.NoError(t, sessions.Reset(ctx))
	require.NoError(t, sessions.Reset(ctx))

	first, err = sessions.Read(ctx)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestFirstSessionStoreWritesCBORMarker(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	sessions := NewFirstSessionStore(store, "", fixedClock{now: time.Unix(1700000000, 0)})

	require.NoError(t, sessions.MarkConsumed(ctx))

	raw, err := store.Get(ctx, DefaultStorageGroup, firstSessionKey)
	require.NoError(t, err)

	var marker sessionMarker
	require.NoError(t, cbor.Unmarshal(raw, &marker))
	assert.Equal(t, int64(1700000000), marker.ConsumedAt)
	assert.NotEmpty(t, marker.InstallID)
}

func TestFirstSessionStoreReadErrorIsReturned(t *testing.T) {
	store := mocks.NewMockSecureStore(t)
	sessions := NewFirstSessionStore(store, "", nil)

	storeErr := errors.New("keychain locked")
	store.EXPECT().Get(mockAnyContext(), DefaultStorageGroup, firstSessionKey).Return(nil, storeErr)

	first, err := sessions.ConsumeFirst(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, first)
}

func TestFirstSessionStoreFailedMarkReportsFalse(t *testing.T) {
	store := mocks.NewMockSecureStore(t)
	sessions := NewFirstSessionStore(store, "", nil)

	writeErr := errors.New("disk full")
	store.EXPECT().Get(mockAnyContext(), DefaultStorageGroup, firstSessionKey).Return(nil, domain.ErrSecretNotFound)
	store.EXPECT().Put(mockAnyContext(), DefaultStorageGroup, firstSessionKey, mock.Anything).Return(writeErr)

	first, err := sessions.ConsumeFirst(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.False(t, first)
}

func TestFirstSessionStoreResetPropagatesDeleteFailure(t *testing.T) {
	store := mocks.NewMockSecureStore(t)
	sessions := NewFirstSessionStore(store, "", nil)

	deleteErr := errors.New("permission denied")
	store.EXPECT().Delete(mockAnyContext(), DefaultStorageGroup, firstSessionKey).Return(deleteErr)

	err := sessions.Reset(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, deleteErr)
}
