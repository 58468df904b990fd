package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

const deviceIDKey = "device_id"

// Collector fills a device fingerprint from host-supplied context, the
// running platform and a device id persisted in the secure store.
type Collector struct {
	store  ports.SecureStore
	group  string
	env    func(string) string
	host   func() (string, error)
	logger *slog.Logger
}

var _ ports.DeviceFingerprinter = (*Collector)(nil)

func NewCollector(store ports.SecureStore, group string, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	return &Collector{
		store:  store,
		group:  group,
		env:    os.Getenv,
		host:   os.Hostname,
		logger: logger,
	}
}

func (c *Collector) Collect(ctx context.Context, device domain.DeviceContext) (domain.DeviceFingerprint, error) {
	fingerprint := domain.DeviceFingerprint{
		OS:           strings.TrimSpace(device.OS),
		Model:        strings.TrimSpace(device.Model),
		DeviceID:     strings.TrimSpace(device.DeviceID),
		LanguageCode: normalizeLanguage(device.Locale),
	}

	if fingerprint.OS == "" {
		fingerprint.OS = runtime.GOOS
	}
	if fingerprint.Model == "" {
		fingerprint.Model = c.model()
	}
	if fingerprint.LanguageCode == "" {
		fingerprint.LanguageCode = c.hostLanguage()
	}
	if fingerprint.DeviceID == "" {
		id, err := c.deviceID(ctx)
		if err != nil {
			return domain.DeviceFingerprint{}, err
		}
		fingerprint.DeviceID = id
	}

	return fingerprint, nil
}

// deviceID returns the persisted id, creating it on first use. When the store
// cannot be written the id is still returned and only lives for the process.
func (c *Collector) deviceID(ctx context.Context) (string, error) {
	if c.store == nil {
		return uuid.NewString(), nil
	}

	raw, err := c.store.Get(ctx, c.group, deviceIDKey)
	if err == nil {
		if id, parseErr := uuid.ParseBytes(raw); parseErr == nil {
			return id.String(), nil
		}
		c.logger.Warn("stored device id is malformed, regenerating")
	} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", fmt.Errorf("read device id: %w", err)
	} else if !errors.Is(err, domain.ErrSecretNotFound) {
		c.logger.Warn("device id unavailable, using ephemeral id", "error", err)
		return uuid.NewString(), nil
	}

	id := uuid.NewString()
	if err := c.store.Put(ctx, c.group, deviceIDKey, []byte(id)); err != nil {
		c.logger.Warn("persist device id", "error", err)
	}

	return id, nil
}

func (c *Collector) model() string {
	name, err := c.host()
	if err != nil || strings.TrimSpace(name) == "" {
		return runtime.GOARCH
	}
	return runtime.GOARCH + "/" + strings.TrimSpace(name)
}

func (c *Collector) hostLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := normalizeLanguage(c.env(key)); tag != "" {
			return tag
		}
	}
	return language.Und.String()
}

// normalizeLanguage turns POSIX locales such as en_US.UTF-8 into BCP 47 tags.
func normalizeLanguage(raw string) string {
	raw = strings.TrimSpace(raw)
	if before, _, ok := strings.Cut(raw, "."); ok {
		raw = before
	}
	if before, _, ok := strings.Cut(raw, "@"); ok {
		raw = before
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return ""
	}
	return tag.String()
}
