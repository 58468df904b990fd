package device

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCollector(store *mocks.MockSecureStore, env map[string]string) *Collector {
	c := NewCollector(store, "deepone.attribution", slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.env = func(key string) string { return env[key] }
	c.host = func() (string, error) { return "build-box", nil }
	return c
}

func TestCollectorKeepsHostSuppliedFields(t *testing.T) {
	t.Parallel()

	collector := newTestCollector(mocks.NewMockSecureStore(t), nil)

	fingerprint, err := collector.Collect(context.Background(), domain.DeviceContext{
		OS:       "ios",
		Model:    "iPhone15,2",
		DeviceID: "dev-1",
		Locale:   "fr_FR.UTF-8",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DeviceFingerprint{
		OS:           "ios",
		Model:        "iPhone15,2",
		DeviceID:     "dev-1",
		LanguageCode: "fr-FR",
	}, fingerprint)
}

func TestCollectorGeneratesAndPersistsDeviceID(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecureStore(t)
	collector := newTestCollector(store, map[string]string{"LANG": "en_US.UTF-8"})

	var persisted []byte
	store.EXPECT().Get(mock.Anything, "deepone.attribution", deviceIDKey).Return(nil, domain.ErrSecretNotFound).Once()
	store.EXPECT().Put(mock.Anything, "deepone.attribution", deviceIDKey, mock.Anything).
		Run(func(_ context.Context, _ string, _ string, value []byte) {
			persisted = value
		}).
		Return(nil).Once()

	fingerprint, err := collector.Collect(context.Background(), domain.DeviceContext{})
	require.NoError(t, err)

	assert.Equal(t, runtime.GOOS, fingerprint.OS)
	assert.Equal(t, runtime.GOARCH+"/build-box", fingerprint.Model)
	assert.Equal(t, "en-US", fingerprint.LanguageCode)
	assert.Equal(t, string(persisted), fingerprint.DeviceID)
	_, err = uuid.Parse(fingerprint.DeviceID)
	assert.NoError(t, err)
}

func TestCollectorReusesStoredDeviceID(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecureStore(t)
	collector := newTestCollector(store, nil)
	stored := uuid.NewString()

	store.EXPECT().Get(mock.Anything, "deepone.attribution", deviceIDKey).Return([]byte(stored), nil).Once()

	fingerprint, err := collector.Collect(context.Background(), domain.DeviceContext{})
	require.NoError(t, err)
	assert.Equal(t, stored, fingerprint.DeviceID)
	assert.Equal(t, "und", fingerprint.LanguageCode)
}

func TestCollectorFallsBackToEphemeralIDWhenStoreFails(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecureStore(t)
	collector := newTestCollector(store, nil)

	store.EXPECT().Get(mock.Anything, "deepone.attribution", deviceIDKey).Return(nil, errors.New("keychain locked")).Once()

	fingerprint, err := collector.Collect(context.Background(), domain.DeviceContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, fingerprint.DeviceID)
}

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"":             "",
		"C":            "",
		"POSIX":        "",
		"en":           "en",
		"en_US.UTF-8":  "en-US",
		"de_DE@euro":   "de-DE",
		"pt-br":        "pt-BR",
		"not a locale": "",
	}

	for raw, want := range testCases {
		assert.Equal(t, want, normalizeLanguage(raw), raw)
	}
}
