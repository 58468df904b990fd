package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/deeponelabs/deepone-go/internal/adapters/device"
	"github.com/deeponelabs/deepone-go/internal/adapters/executor"
	attributionview "github.com/deeponelabs/deepone-go/internal/adapters/render/attribution"
	tomlrepo "github.com/deeponelabs/deepone-go/internal/adapters/repo/toml"
	badgerstore "github.com/deeponelabs/deepone-go/internal/adapters/secrets/badger"
	chainstore "github.com/deeponelabs/deepone-go/internal/adapters/secrets/chain"
	filestore "github.com/deeponelabs/deepone-go/internal/adapters/secrets/file"
	passstore "github.com/deeponelabs/deepone-go/internal/adapters/secrets/pass"
	"github.com/deeponelabs/deepone-go/internal/adapters/service/httpapi"
	"github.com/deeponelabs/deepone-go/internal/application"
	"github.com/deeponelabs/deepone-go/internal/config"
	"github.com/deeponelabs/deepone-go/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg      config.Config
	journal  *tomlrepo.Journal
	levelVar *slog.LevelVar
	logger   *slog.Logger
	renderer func(attributionview.Report, attributionview.RenderOptions) (string, error)
	now      func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	journal, err := tomlrepo.NewJournal(cfg.Viper())
	if err != nil {
		return nil, fmt.Errorf("wire attribution journal: %w", err)
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(cfg.LogLevel)

	return &app{
		cfg:      cfg,
		journal:  journal,
		levelVar: levelVar,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		renderer: attributionview.Render,
		now:      time.Now,
	}, nil
}

func (a *app) setLogOutput(w io.Writer, verbose bool) {
	if verbose {
		a.levelVar.Set(slog.LevelDebug)
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: a.levelVar}))
}

// openStore opens the configured secure store. The returned close func must
// be called once the command is done with it.
func (a *app) openStore() (ports.SecureStore, func() error, error) {
	noop := func() error { return nil }

	switch a.cfg.Backend {
	case config.StorageBadger:
		store, err := badgerstore.Open(badgerstore.Config{Path: filepath.Join(a.cfg.StorageDir, "badger"), Logger: a.logger})
		if err != nil {
			return nil, nil, fmt.Errorf("wire badger secure store: %w", err)
		}
		return store, store.Close, nil
	case config.StoragePass:
		return passstore.NewStore(passstore.DefaultPrefix), noop, nil
	case config.StorageChain:
		store, err := chainstore.NewPassFirstWithFileFallback(passstore.DefaultPrefix, a.cfg.StorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("wire secure store chain: %w", err)
		}
		return store, noop, nil
	default:
		return filestore.NewStore(a.cfg.StorageDir), noop, nil
	}
}

// session is one command's worth of engine plus the resources behind it.
type session struct {
	engine   *application.Engine
	executor *executor.Serial
	close    func() error
}

func (a *app) newSession() (*session, error) {
	store, closeStore, err := a.openStore()
	if err != nil {
		return nil, err
	}

	clock := ports.SystemClock{}
	sessions := application.NewFirstSessionStore(store, a.cfg.StorageGroup, clock)
	serial := executor.NewSerial(16)

	engine := application.NewEngine(application.EngineConfig{
		Service: httpapi.NewClient(httpapi.Config{
			BaseURL: a.cfg.BaseURL,
			Timeout: a.cfg.Timeout,
			Logger:  a.logger,
		}),
		Sessions:     sessions,
		Fingerprints: device.NewCollector(store, a.cfg.StorageGroup, a.logger),
		Credentials:  a.cfg.Credentials,
		Executor:     serial,
		Journal:      a.journal,
		Clock:        clock,
		Logger:       a.logger,
	})

	return &session{
		engine:   engine,
		executor: serial,
		close:    closeStore,
	}, nil
}

// finish waits for in-flight work, drains queued completions and releases
// the store.
func (s *session) finish() error {
	s.engine.Wait()
	s.executor.Close()
	return s.close()
}
