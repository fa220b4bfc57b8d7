package ports

import (
	"context"

	"attribution-relay/internal/reports/core/domain"
)

type ReportFilter struct {
	EventName string
	From      int64
	To        int64
	Channel   *string // optional
	GroupBy   string  // "", "channel", "source", "medium", "campaign", "time"
	Interval  string  // "hour" / "day" (GroupBy = "time" required)
}

type ReportReaderPort interface {
	QueryReport(ctx context.Context, f ReportFilter) (*domain.Report, error)
}
