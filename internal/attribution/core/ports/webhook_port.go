package ports

import (
	"context"

	"attribution-relay/internal/attribution/core/domain"
)

type WebhookPort interface {
	// Configured reports whether a real endpoint is set; placeholder URLs count as unset.
	Configured() bool
	SendConversion(ctx context.Context, c domain.SignupConversion) error
}
