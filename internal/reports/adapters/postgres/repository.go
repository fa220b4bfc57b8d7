package postgres

import (
	"context"
	"fmt"
	"time"

	"attribution-relay/internal/reports/core/domain"
	"attribution-relay/internal/reports/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type ReportRepository struct {
	db DB
}

func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ ports.ReportReaderPort = (*ReportRepository)(nil)

var groupColumns = map[string]string{
	"channel":  "channel",
	"source":   "first_touch_source",
	"medium":   "first_touch_medium",
	"campaign": "first_touch_campaign",
}

func (r *ReportRepository) QueryReport(ctx context.Context, f ports.ReportFilter) (*domain.Report, error) {
	fromTime := time.Unix(f.From, 0).UTC()
	toTime := time.Unix(f.To, 0).UTC()

	where := "event_name = $1 AND event_time BETWEEN $2 AND $3"
	args := []any{f.EventName, fromTime, toTime}
	argIndex := 4

	if f.Channel != nil {
		where += fmt.Sprintf(" AND channel = $%d", argIndex)
		args = append(args, *f.Channel)
		argIndex++
	}

	result := &domain.Report{
		EventName: f.EventName,
		From:      f.From,
		To:        f.To,
		GroupBy:   f.GroupBy,
	}

	if column, ok := groupColumns[f.GroupBy]; ok {
		return r.queryGroupByColumn(ctx, column, where, args, result)
	}

	switch f.GroupBy {
	case "":
		return r.queryNoGroup(ctx, where, args, result)
	case "time":
		return r.queryGroupByTime(ctx, where, args, result, f.Interval)
	default:
		// the use case validates group_by before we get here
		return nil, fmt.Errorf("unsupported group_by: %s", f.GroupBy)
	}
}

func (r *ReportRepository) queryNoGroup(
	ctx context.Context,
	where string,
	args []any,
	res *domain.Report,
) (*domain.Report, error) {
	query := `
SELECT
    COUNT(*) AS total_count,
    COUNT(DISTINCT visitor_id) AS unique_visitors
FROM attribution_events
WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var total, unique int64
		if err := rows.Scan(&total, &unique); err != nil {
			return nil, err
		}
		res.TotalCount = total
		res.UniqueVisitors = unique
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

// queryGroupByColumn breaks the totals down by one of the whitelisted
// columns in groupColumns.
func (r *ReportRepository) queryGroupByColumn(
	ctx context.Context,
	column string,
	where string,
	args []any,
	res *domain.Report,
) (*domain.Report, error) {
	query := fmt.Sprintf(`
SELECT
    COALESCE(NULLIF(%[1]s, ''), '%[2]s') AS group_key,
    COUNT(*) AS total_count,
    COUNT(DISTINCT visitor_id) AS unique_visitors
FROM attribution_events
WHERE %[3]s
GROUP BY group_key
ORDER BY group_key`, column, domain.NoValueKey, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.ReportGroup
	var totalSum int64
	var uniqueSum int64

	for rows.Next() {
		var key string
		var total, unique int64

		if err := rows.Scan(&key, &total, &unique); err != nil {
			return nil, err
		}

		groups = append(groups, domain.ReportGroup{
			Key:            key,
			TotalCount:     total,
			UniqueVisitors: unique,
		})
		totalSum += total
		uniqueSum += unique // a visitor seen in two groups is counted twice
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.Groups = groups
	res.TotalCount = totalSum
	res.UniqueVisitors = uniqueSum

	return res, nil
}

func (r *ReportRepository) queryGroupByTime(
	ctx context.Context,
	where string,
	args []any,
	res *domain.Report,
	interval string,
) (*domain.Report, error) {
	query := fmt.Sprintf(`
SELECT
    date_trunc('%s', event_time) AS bucket,
    COUNT(*) AS total_count,
    COUNT(DISTINCT visitor_id) AS unique_visitors
FROM attribution_events
WHERE %s
GROUP BY bucket
ORDER BY bucket
`, interval, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.ReportGroup
	var totalSum int64
	var uniqueSum int64

	for rows.Next() {
		var ts time.Time
		var total, unique int64

		if err := rows.Scan(&ts, &total, &unique); err != nil {
			return nil, err
		}

		groups = append(groups, domain.ReportGroup{
			Key:            ts.UTC().Format(time.RFC3339),
			TotalCount:     total,
			UniqueVisitors: unique,
		})
		totalSum += total
		uniqueSum += unique
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.Groups = groups
	res.TotalCount = totalSum
	res.UniqueVisitors = uniqueSum

	return res, nil
}
