package ports

import (
	"context"

	"github.com/deeponelabs/deepone-go/internal/domain"
)

type AttributionService interface {
	Verify(ctx context.Context, fingerprint domain.DeviceFingerprint, apiKey string) (domain.VerifyResult, error)
	CreateLink(ctx context.Context, params domain.LinkParameters, apiKey string) (string, error)
}
