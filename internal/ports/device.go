package ports

import (
	"context"

	"github.com/deeponelabs/deepone-go/internal/domain"
)

type DeviceFingerprinter interface {
	Collect(ctx context.Context, device domain.DeviceContext) (domain.DeviceFingerprint, error)
}
