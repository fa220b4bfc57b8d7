package usecase

import (
	"context"
	"errors"

	"attribution-relay/internal/reports/core/domain"
	"attribution-relay/internal/reports/core/ports"
)

var (
	ErrInvalidReportQuery = errors.New("invalid report query")
	ErrInvalidTimeRange   = errors.New("invalid time range")
	ErrInvalidGroupBy     = errors.New("invalid group_by value")
	ErrInvalidInterval    = errors.New("invalid interval for time grouping")
)

type GetReportInput struct {
	EventName string
	From      int64
	To        int64

	Channel  *string
	GroupBy  string // "", "channel", "source", "medium", "campaign", "time"
	Interval string // "hour" / "day" (required when group_by=time)
}

type GetReportUseCase struct {
	reader ports.ReportReaderPort
}

func NewGetReportUseCase(reader ports.ReportReaderPort) *GetReportUseCase {
	return &GetReportUseCase{reader: reader}
}

// Execute validates the input, turns it into a filter and queries the journal.
func (uc *GetReportUseCase) Execute(ctx context.Context, in GetReportInput) (*domain.Report, error) {

	if in.EventName == "" {
		return nil, ErrInvalidReportQuery
	}

	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}

	switch in.GroupBy {
	case "", "channel", "source", "medium", "campaign":
		// valid
	case "time":
		// interval required and only "hour" / "day"
		if in.Interval != "hour" && in.Interval != "day" {
			return nil, ErrInvalidInterval
		}
	default:
		return nil, ErrInvalidGroupBy
	}

	filter := ports.ReportFilter{
		EventName: in.EventName,
		From:      in.From,
		To:        in.To,
		Channel:   in.Channel,
		GroupBy:   in.GroupBy,
		Interval:  in.Interval,
	}

	return uc.reader.QueryReport(ctx, filter)
}
