package toml

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	JournalPathKey       = "journal.path"
	JournalMaxRecordsKey = "journal.max_records"
	DefaultMaxRecords    = 500

	journalFileMode   = 0o600
	journalDirMode    = 0o700
	journalConfigDir  = ".deepone"
	journalConfigFile = "journal.toml"
	tempFilePattern   = ".journal-*.toml.tmp"
)

// Journal appends processed attribution records to a TOML file, keeping the
// newest maxRecords entries.
type Journal struct {
	path       string
	maxRecords int
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RecordJournal = (*Journal)(nil)

func NewJournal(cfg *viper.Viper) (*Journal, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(JournalPathKey, filepath.Join(homeDir, journalConfigDir, journalConfigFile))
	cfg.SetDefault(JournalMaxRecordsKey, DefaultMaxRecords)

	path := cfg.GetString(JournalPathKey)
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	path, err = normalizeJournalPath(path)
	if err != nil {
		return nil, err
	}

	maxRecords := cfg.GetInt(JournalMaxRecordsKey)
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}

	return &Journal{path: path, maxRecords: maxRecords, mu: lockForPath(path)}, nil
}

func (j *Journal) Path() string {
	return j.path
}

func (j *Journal) Append(ctx context.Context, record domain.AttributionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := j.readSchema()
	if err != nil {
		return err
	}

	file.Records = append(file.Records, toSchema(record))
	if overflow := len(file.Records) - j.maxRecords; overflow > 0 {
		file.Records = file.Records[overflow:]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return j.writeSchema(file)
}

func (j *Journal) List(ctx context.Context) ([]domain.AttributionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	file, err := j.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.AttributionRecord, 0, len(file.Records))
	for _, entry := range file.Records {
		records = append(records, fromSchema(entry))
	}

	return records, nil
}

func (j *Journal) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	err := os.Remove(j.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove journal file: %w", err)
	}

	return nil
}

func (j *Journal) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read journal file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode journal file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (j *Journal) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(j.path), journalDirMode); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode journal file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(j.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp journal file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp journal file: %w", err)
	}

	if err := tempFile.Chmod(journalFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp journal file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp journal file: %w", err)
	}

	if err := os.Rename(tempName, j.path); err != nil {
		return fmt.Errorf("replace journal file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizeJournalPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve journal path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(record domain.AttributionRecord) recordSchema {
	origin, _ := record.OriginURL()

	return recordSchema{
		OriginURL:      origin,
		IsFirstSession: record.IsFirstSession(),
		Source:         string(record.Source()),
		CapturedAt:     formatTime(record.CapturedAt()),
	}
}

// fromSchema rebuilds a record. An origin that no longer parses yields a
// record without URL-derived fields.
func fromSchema(entry recordSchema) domain.AttributionRecord {
	var origin *url.URL
	if entry.OriginURL != "" {
		if parsed, err := url.Parse(entry.OriginURL); err == nil {
			origin = parsed
		}
	}

	return domain.NewAttributionRecord(domain.RecordInput{
		URL:            origin,
		IsFirstSession: entry.IsFirstSession,
		Source:         domain.RecordSource(entry.Source),
		CapturedAt:     parseTime(entry.CapturedAt),
	})
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
