package application

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type memoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}}
}

func (s *memoryStore) Get(_ context.Context, group, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[group+"/"+key]
	if !ok {
		return nil, domain.ErrSecretNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryStore) Put(_ context.Context, group, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[group+"/"+key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, group, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, group+"/"+key)
	return nil
}

type memoryJournal struct {
	mu      sync.Mutex
	records []domain.AttributionRecord
}

func (j *memoryJournal) Append(_ context.Context, record domain.AttributionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.records = append(j.records, record)
	return nil
}

func (j *memoryJournal) List(context.Context) ([]domain.AttributionRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	return append([]domain.AttributionRecord(nil), j.records...), nil
}

type resultRecorder struct {
	mu      sync.Mutex
	results []domain.Result[domain.AttributionRecord]
}

func (r *resultRecorder) handle(result domain.Result[domain.AttributionRecord]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, result)
}

func (r *resultRecorder) all() []domain.Result[domain.AttributionRecord] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.Result[domain.AttributionRecord](nil), r.results...)
}
