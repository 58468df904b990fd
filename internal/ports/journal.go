package ports

import (
	"context"

	"github.com/deeponelabs/deepone-go/internal/domain"
)

type RecordJournal interface {
	Append(ctx context.Context, record domain.AttributionRecord) error
	List(ctx context.Context) ([]domain.AttributionRecord, error)
}
