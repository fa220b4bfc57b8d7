package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"attribution-relay/internal/reports/core/ports"
)

// fakeRowScanner implements RowScanner for tests.
type fakeRowScanner struct {
	rows []fakeRow
	i    int
	err  error
}

type fakeRow struct {
	values []any
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row.values) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *int64:
			v, ok := row.values[i].(int64)
			if !ok {
				return errors.New("type assertion to int64 failed")
			}
			*d = v
		case *string:
			v, ok := row.values[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = v
		case *time.Time:
			v, ok := row.values[i].(time.Time)
			if !ok {
				return errors.New("type assertion to time.Time failed")
			}
			*d = v
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	return nil
}

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	lastArgs  []any
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return nil, nil
}

// ------------------------------------------------------------
// NO GROUP BY
// ------------------------------------------------------------

func TestReportRepository_NoGroupBy(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "FROM attribution_events") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{int64(150), int64(40)}},
				},
			}, nil
		},
	}

	repo := NewReportRepository(db)

	res, err := repo.QueryReport(context.Background(), ports.ReportFilter{
		EventName: "tzc_app_pageview",
		From:      100,
		To:        200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.called {
		t.Fatalf("expected QueryContext to be called")
	}
	if res.TotalCount != 150 || res.UniqueVisitors != 40 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.GroupBy != "" {
		t.Fatalf("expected empty group_by, got %s", res.GroupBy)
	}
}

// ------------------------------------------------------------
// GROUP BY FIRST-TOUCH SOURCE
// ------------------------------------------------------------

func TestReportRepository_GroupBySource(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "COALESCE(NULLIF(first_touch_source, ''), '(none)')") {
				t.Fatalf("expected first_touch_source grouping, got: %s", query)
			}
			if !strings.Contains(query, "GROUP BY group_key") {
				t.Fatalf("expected GROUP BY group_key, got: %s", query)
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{"(none)", int64(5), int64(5)}},
					{values: []any{"facebook", int64(20), int64(8)}},
				},
			}, nil
		},
	}

	repo := NewReportRepository(db)

	res, err := repo.QueryReport(context.Background(), ports.ReportFilter{
		EventName: "sign_up",
		From:      100,
		To:        200,
		GroupBy:   "source",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(res.Groups))
	}
	if res.Groups[1].Key != "facebook" {
		t.Fatalf("unexpected group key %s", res.Groups[1].Key)
	}
	if res.TotalCount != 25 || res.UniqueVisitors != 13 {
		t.Fatalf("unexpected totals: %+v", res)
	}
}

// ------------------------------------------------------------
// GROUP BY CHANNEL + CHANNEL FILTER
// ------------------------------------------------------------

func TestReportRepository_GroupByChannelWithFilter(t *testing.T) {
	channel := "mobile"
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "AND channel = $4") {
				t.Fatalf("expected channel filter, got: %s", query)
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{"mobile", int64(7), int64(3)}},
				},
			}, nil
		},
	}

	repo := NewReportRepository(db)

	res, err := repo.QueryReport(context.Background(), ports.ReportFilter{
		EventName: "tzc_app_pageview",
		From:      100,
		To:        200,
		Channel:   &channel,
		GroupBy:   "channel",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.lastArgs) != 4 || db.lastArgs[3] != "mobile" {
		t.Fatalf("unexpected args: %v", db.lastArgs)
	}
	if res.TotalCount != 7 {
		t.Fatalf("expected total_count=7, got %d", res.TotalCount)
	}
}

// ------------------------------------------------------------
// GROUP BY TIME (hour)
// ------------------------------------------------------------

func TestReportRepository_GroupByTime(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "date_trunc('hour'") {
				t.Fatalf("expected date_trunc('hour', ...) in query, got: %s", query)
			}

			t1 := time.Date(2025, 12, 7, 10, 0, 0, 0, time.UTC)
			t2 := time.Date(2025, 12, 7, 11, 0, 0, 0, time.UTC)

			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{t1, int64(100), int64(40)}},
					{values: []any{t2, int64(200), int64(60)}},
				},
			}, nil
		},
	}

	repo := NewReportRepository(db)

	res, err := repo.QueryReport(context.Background(), ports.ReportFilter{
		EventName: "tzc_app_pageview",
		From:      100,
		To:        200,
		GroupBy:   "time",
		Interval:  "hour",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(res.Groups))
	}
	if res.TotalCount != 300 || res.UniqueVisitors != 100 {
		t.Fatalf("unexpected totals: %+v", res)
	}
	for _, g := range res.Groups {
		if _, err := time.Parse(time.RFC3339, g.Key); err != nil {
			t.Fatalf("expected RFC3339 key, got %s (%v)", g.Key, err)
		}
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestReportRepository_DBError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}

	repo := NewReportRepository(db)

	res, err := repo.QueryReport(context.Background(), ports.ReportFilter{
		EventName: "sign_up",
		From:      100,
		To:        200,
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result on error")
	}
}

func TestReportRepository_UnsupportedGroupBy(t *testing.T) {
	repo := NewReportRepository(&fakeDB{})

	_, err := repo.QueryReport(context.Background(), ports.ReportFilter{
		EventName: "sign_up",
		From:      100,
		To:        200,
		GroupBy:   "visitor_id; DROP TABLE attribution_events",
	})
	if err == nil {
		t.Fatalf("expected error for unsupported group_by")
	}
}
