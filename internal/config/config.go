package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deeponelabs/deepone-go/internal/application"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".deepone"
	envPrefix  = "DEEPONE"

	KeyAPILiveKey      = "api.live_key"
	KeyAPITestKey      = "api.test_key"
	KeyAPIBaseURL      = "api.base_url"
	KeyAPITimeout      = "api.timeout"
	KeyStorageBackend  = "storage.backend"
	KeyStorageDir      = "storage.dir"
	KeyStorageGroup    = "storage.group"
	KeyDevelopmentMode = "development_mode"
	KeyLogLevel        = "log.level"
)

type StorageBackend string

const (
	StorageFile   StorageBackend = "file"
	StorageBadger StorageBackend = "badger"
	StoragePass   StorageBackend = "pass"
	StorageChain  StorageBackend = "chain"
)

var ErrUnknownStorageBackend = errors.New("unknown storage backend")

type Config struct {
	Credentials     application.Credentials
	BaseURL         string
	Timeout         time.Duration
	Backend         StorageBackend
	StorageDir      string
	StorageGroup    string
	DevelopmentMode bool
	LogLevel        slog.Level

	v *viper.Viper
}

// Viper exposes the loaded settings to adapters that read their own keys.
func (c Config) Viper() *viper.Viper {
	return c.v
}

// Load reads ~/.deepone/config.toml when present and overlays DEEPONE_*
// environment variables, so api.live_key is read from DEEPONE_API_LIVE_KEY.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIBaseURL, "https://api.deepone.io")
	v.SetDefault(KeyAPITimeout, 30*time.Second)
	v.SetDefault(KeyStorageBackend, string(StorageFile))
	v.SetDefault(KeyStorageDir, filepath.Join(baseDir, "store"))
	v.SetDefault(KeyStorageGroup, application.DefaultStorageGroup)
	v.SetDefault(KeyDevelopmentMode, false)
	v.SetDefault(KeyLogLevel, "warn")

	err = v.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	backend := StorageBackend(strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))))
	switch backend {
	case StorageFile, StorageBadger, StoragePass, StorageChain:
	default:
		return Config{}, fmt.Errorf("%w %q", ErrUnknownStorageBackend, backend)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", KeyLogLevel, err)
	}

	timeout := v.GetDuration(KeyAPITimeout)
	if timeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyAPITimeout, timeout)
	}

	storageDir, err := filepath.Abs(v.GetString(KeyStorageDir))
	if err != nil {
		return Config{}, fmt.Errorf("resolve storage dir: %w", err)
	}

	return Config{
		Credentials: application.Credentials{
			LiveKey: v.GetString(KeyAPILiveKey),
			TestKey: v.GetString(KeyAPITestKey),
		},
		BaseURL:         v.GetString(KeyAPIBaseURL),
		Timeout:         timeout,
		Backend:         backend,
		StorageDir:      storageDir,
		StorageGroup:    v.GetString(KeyStorageGroup),
		DevelopmentMode: v.GetBool(KeyDevelopmentMode),
		LogLevel:        level,
		v:               v,
	}, nil
}
