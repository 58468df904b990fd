package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidSegments(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		group   string
		key     string
		wantErr string
	}{
		{name: "empty key", group: "deepone.attribution", key: "", wantErr: "secure store key is empty"},
		{name: "whitespace group", group: "   ", key: "k", wantErr: "secure store group is empty"},
		{name: "absolute key", group: "g", key: "/absolute/path", wantErr: "invalid secure store key"},
		{name: "traversal group", group: "../escape", key: "k", wantErr: "invalid secure store group"},
		{name: "deep traversal key", group: "g", key: "../../secret", wantErr: "invalid secure store key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.group, tc.key, []byte("value"))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	want := []byte{0xa2, 0x01, 0x02}

	err := store.Put(context.Background(), "deepone.attribution", "first_session_consumed", want)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "deepone.attribution", "first_session_consumed")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(root, "deepone.attribution", "first_session_consumed"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(valueFileMod), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "deepone.attribution"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestStoreGetMissingReportsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "deepone.attribution", "first_session_consumed")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenValueMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	err := store.Delete(context.Background(), "deepone.attribution", "first_session_consumed")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "deepone.attribution", "first_session_consumed")
	require.NoError(t, err)
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore(t.TempDir())
	_, err := store.Get(ctx, "g", "k")
	assert.ErrorIs(t, err, context.Canceled)
}
