package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	attributionview "github.com/deeponelabs/deepone-go/internal/adapters/render/attribution"
	"github.com/deeponelabs/deepone-go/internal/application"
	"github.com/deeponelabs/deepone-go/internal/domain"
)

// outcomes collects what the engine hands to its handler during one command.
type outcomes struct {
	mu       sync.Mutex
	records  []domain.AttributionRecord
	failures []error
}

func (o *outcomes) handler() application.Handler {
	return func(result domain.Result[domain.AttributionRecord]) {
		record, err := result.Unwrap()

		o.mu.Lock()
		defer o.mu.Unlock()
		if err != nil {
			o.failures = append(o.failures, err)
			return
		}
		o.records = append(o.records, record)
	}
}

func (o *outcomes) snapshot() ([]domain.AttributionRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]domain.AttributionRecord(nil), o.records...), errors.Join(o.failures...)
}

func (a *app) writeRecords(w io.Writer, title string, records []domain.AttributionRecord, firstSession *bool, asJSON bool) error {
	if asJSON {
		if records == nil {
			records = []domain.AttributionRecord{}
		}
		payload, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err
	}

	rendered, err := a.renderer(attributionview.Report{
		Title:        title,
		Records:      records,
		FirstSession: firstSession,
	}, attributionview.RenderOptions{Now: a.now()})
	if err != nil {
		return fmt.Errorf("render records: %w", err)
	}

	_, err = fmt.Fprintln(w, rendered)
	return err
}
