package fiber_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	httpadapter "attribution-relay/internal/reports/adapters/http/fiber"
	"attribution-relay/internal/reports/core/domain"
	"attribution-relay/internal/reports/core/usecase"

	"github.com/gofiber/fiber/v2"
)

// Fake usecase implementing the interface that handler depends on.
type fakeGetReportUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetReportInput) (*domain.Report, error)
	lastInput usecase.GetReportInput
	called    bool
}

func (f *fakeGetReportUseCase) Execute(ctx context.Context, in usecase.GetReportInput) (*domain.Report, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return nil, nil
}

func setupApp(t *testing.T, uc httpadapter.GetReportUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := httpadapter.NewReportHandler(uc)
	app.Get("/reports", h.GetReport)
	return app
}

func baseParams() url.Values {
	params := url.Values{}
	params.Set("event_name", "sign_up")
	params.Set("from", "100")
	params.Set("to", "200")
	return params
}

// ------------------------------------------------------------
// SUCCESS: no group_by
// ------------------------------------------------------------

func TestGetReport_Success_NoGroupBy(t *testing.T) {
	uc := &fakeGetReportUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetReportInput) (*domain.Report, error) {
			if in.EventName != "sign_up" {
				t.Fatalf("expected event_name=sign_up, got %s", in.EventName)
			}
			if in.From != 100 || in.To != 200 {
				t.Fatalf("expected from=100,to=200 got from=%d,to=%d", in.From, in.To)
			}
			return &domain.Report{
				EventName:      in.EventName,
				From:           in.From,
				To:             in.To,
				TotalCount:     12,
				UniqueVisitors: 10,
			}, nil
		},
	}

	app := setupApp(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/reports?"+baseParams().Encode(), nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out["total_count"].(float64) != 12 || out["unique_visitors"].(float64) != 10 {
		t.Fatalf("unexpected body: %s", body)
	}
	if _, ok := out["groups"]; ok {
		t.Fatalf("groups should be omitted without group_by: %s", body)
	}
}

// ------------------------------------------------------------
// SUCCESS: group_by=source with channel filter
// ------------------------------------------------------------

func TestGetReport_Success_GroupBySource(t *testing.T) {
	uc := &fakeGetReportUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetReportInput) (*domain.Report, error) {
			return &domain.Report{
				EventName: in.EventName,
				GroupBy:   in.GroupBy,
				Groups: []domain.ReportGroup{
					{Key: "facebook", TotalCount: 4, UniqueVisitors: 4},
					{Key: "google", TotalCount: 2, UniqueVisitors: 1},
				},
			}, nil
		},
	}

	app := setupApp(t, uc)

	params := baseParams()
	params.Set("group_by", "source")
	params.Set("channel", "mobile")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports?"+params.Encode(), nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if uc.lastInput.GroupBy != "source" {
		t.Fatalf("expected group_by=source, got %s", uc.lastInput.GroupBy)
	}
	if uc.lastInput.Channel == nil || *uc.lastInput.Channel != "mobile" {
		t.Fatalf("expected channel=mobile, got %v", uc.lastInput.Channel)
	}

	var out struct {
		Groups []struct {
			Key string `json:"key"`
		} `json:"groups"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out.Groups) != 2 || out.Groups[0].Key != "facebook" {
		t.Fatalf("unexpected groups: %+v", out.Groups)
	}
}

// ------------------------------------------------------------
// MISSING / INVALID QUERY PARAMS
// ------------------------------------------------------------

func TestGetReport_InvalidQueryParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"missing event_name", func(p url.Values) { p.Del("event_name") }},
		{"missing from", func(p url.Values) { p.Del("from") }},
		{"bad from", func(p url.Values) { p.Set("from", "abc") }},
		{"bad to", func(p url.Values) { p.Set("to", "1.5") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeGetReportUseCase{}
			app := setupApp(t, uc)

			params := baseParams()
			tt.mutate(params)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports?"+params.Encode(), nil))
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
			if uc.called {
				t.Fatalf("usecase should not be called on invalid query params")
			}
		})
	}
}

// ------------------------------------------------------------
// USECASE-LEVEL VALIDATION ERRORS -> 400
// ------------------------------------------------------------

func TestGetReport_UsecaseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		ucError error
	}{
		{"invalid_query", usecase.ErrInvalidReportQuery},
		{"invalid_time_range", usecase.ErrInvalidTimeRange},
		{"invalid_group_by", usecase.ErrInvalidGroupBy},
		{"invalid_interval", usecase.ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeGetReportUseCase{
				ExecuteFn: func(ctx context.Context, in usecase.GetReportInput) (*domain.Report, error) {
					return nil, tt.ucError
				},
			}

			app := setupApp(t, uc)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports?"+baseParams().Encode(), nil))
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
		})
	}
}

// ------------------------------------------------------------
// USECASE OTHER ERROR -> 500
// ------------------------------------------------------------

func TestGetReport_InternalError(t *testing.T) {
	uc := &fakeGetReportUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetReportInput) (*domain.Report, error) {
			return nil, context.DeadlineExceeded
		},
	}

	app := setupApp(t, uc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports?"+baseParams().Encode(), nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}
