package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
	"github.com/dgraph-io/badger/v4"
)

const storeDirMode = 0o700

type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	InMemory bool

	Logger *slog.Logger
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Store is a secure store backed by an embedded Badger database. Keys are
// laid out as group/key.
type Store struct {
	db *badger.DB
}

var _ ports.SecureStore = (*Store)(nil)

func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent secure store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, storeDirMode); err != nil {
			return nil, fmt.Errorf("create secure store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger secure store: %w", err)
	}

	return &Store{db: db}, nil
}

func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Put(ctx context.Context, group string, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	storeKey, err := composeKey(group, key)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(storeKey, value)
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", group, key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, group string, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	storeKey, err := composeKey(group, key)
	if err != nil {
		return nil, err
	}

	var value []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storeKey)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("badger value %s/%s: %w", group, key, domain.ErrSecretNotFound)
		}
		return nil, fmt.Errorf("get %s/%s: %w", group, key, err)
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, group string, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	storeKey, err := composeKey(group, key)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(storeKey)
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", group, key, err)
	}

	return nil
}

func composeKey(group string, key string) ([]byte, error) {
	group = strings.TrimSpace(group)
	key = strings.TrimSpace(key)
	if group == "" {
		return nil, errors.New("secure store group is empty")
	}
	if key == "" {
		return nil, errors.New("secure store key is empty")
	}

	return []byte(group + "/" + key), nil
}
