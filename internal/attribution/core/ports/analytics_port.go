package ports

import (
	"context"

	"attribution-relay/internal/attribution/core/domain"
)

type AnalyticsPort interface {
	SendEvent(ctx context.Context, e domain.AnalyticsEvent) error
}
