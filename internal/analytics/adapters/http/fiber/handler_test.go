package fiber_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	httpadapter "order-dashboard-service/internal/analytics/adapters/http/fiber"
	"order-dashboard-service/internal/analytics/core/domain"
	"order-dashboard-service/internal/analytics/core/engine"
	"order-dashboard-service/internal/analytics/core/usecase"
	orders "order-dashboard-service/internal/orders/core/domain"
)

// Fakes implementing the interfaces the handler depends on.
type fakeDashboardUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error)
	lastInput usecase.GetDashboardInput
	called    bool
}

func (f *fakeDashboardUseCase) Execute(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return &domain.Dashboard{Start: in.Start, End: in.End}, nil
}

type fakeBreakdownUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetBreakdownInput) (*domain.Breakdown, error)
	lastInput usecase.GetBreakdownInput
	called    bool
}

func (f *fakeBreakdownUseCase) Execute(ctx context.Context, in usecase.GetBreakdownInput) (*domain.Breakdown, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return &domain.Breakdown{Dimension: in.Dimension}, nil
}

type fakeBoundsUseCase struct {
	ExecuteFn func(ctx context.Context) (*orders.Bounds, error)
	called    bool
}

func (f *fakeBoundsUseCase) Execute(ctx context.Context) (*orders.Bounds, error) {
	f.called = true
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx)
	}
	return &orders.Bounds{
		Min: time.Date(2016, 9, 15, 12, 0, 0, 0, time.UTC),
		Max: time.Date(2018, 9, 3, 17, 0, 0, 0, time.UTC),
	}, nil
}

type fakes struct {
	dashboard *fakeDashboardUseCase
	breakdown *fakeBreakdownUseCase
	bounds    *fakeBoundsUseCase
}

func setupApp(t *testing.T, f fakes) *fiber.App {
	t.Helper()
	if f.dashboard == nil {
		f.dashboard = &fakeDashboardUseCase{}
	}
	if f.breakdown == nil {
		f.breakdown = &fakeBreakdownUseCase{}
	}
	if f.bounds == nil {
		f.bounds = &fakeBoundsUseCase{}
	}

	money, err := httpadapter.NewMoneyFormatter("IDR", "id-ID")
	if err != nil {
		t.Fatalf("money formatter: %v", err)
	}

	app := fiber.New()
	h := httpadapter.NewDashboardHandler(f.dashboard, f.breakdown, f.bounds, money, time.UTC)
	h.Register(app)
	return app
}

func get(t *testing.T, app *fiber.App, path string, params url.Values) (*http.Response, []byte) {
	t.Helper()
	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

// ------------------------------------------------------------
// DASHBOARD: SUCCESS
// ------------------------------------------------------------

func TestGetDashboard_Success(t *testing.T) {
	day := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := &fakeDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
			if !in.Start.Equal(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected start: %s", in.Start)
			}
			// date-only end covers the whole day
			if !in.End.Equal(time.Date(2018, 1, 31, 23, 59, 59, 999999999, time.UTC)) {
				t.Fatalf("unexpected end: %s", in.End)
			}
			if len(in.Statuses) != 2 || in.Statuses[0] != orders.StatusDelivered || in.Statuses[1] != orders.StatusShipped {
				t.Fatalf("unexpected statuses: %v", in.Statuses)
			}
			return &domain.Dashboard{
				Start:       in.Start,
				End:         in.End,
				Totals:      domain.Totals{OrderCount: 1, Revenue: decimal.NewFromInt(50)},
				DailyOrders: []domain.DailyOrders{{Date: day, OrderCount: 1, Revenue: decimal.NewFromInt(50)}},
				DailySpend:  []domain.DailySpend{{Date: day, TotalSpend: decimal.NewFromInt(50)}},
				CustomerStates: domain.Breakdown{
					Dimension: domain.DimensionCustomerState,
					Rows:      []domain.GroupCount{{Key: "SP", Count: 2}, {Key: "RJ", Count: 1}},
					Dominant:  "SP",
				},
			}, nil
		},
	}

	app := setupApp(t, fakes{dashboard: uc})

	params := url.Values{}
	params.Set("start", "2018-01-01")
	params.Set("end", "2018-01-31")
	params.Set("status", "Delivered, shipped")

	resp, body := get(t, app, "/dashboard", params)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.StatusCode, body)
	}
	if !uc.called {
		t.Fatalf("expected usecase to be called")
	}

	var out httpadapter.DashboardResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Totals.OrderCount != 1 || !out.Totals.Revenue.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected totals: %+v", out.Totals)
	}
	if out.Totals.RevenueDisplay == "" {
		t.Fatalf("expected formatted revenue")
	}
	if len(out.DailyOrders) != 1 || out.DailyOrders[0].Date != "2018-01-01" {
		t.Fatalf("unexpected daily orders: %+v", out.DailyOrders)
	}
	if out.CustomerStates.Dominant != "SP" || len(out.CustomerStates.Rows) != 2 {
		t.Fatalf("unexpected states: %+v", out.CustomerStates)
	}
	// breakdown without rows renders as an empty state
	if !out.ProductCategories.Empty {
		t.Fatalf("expected empty product categories")
	}
}

func TestGetDashboard_DefaultsToDataBounds(t *testing.T) {
	bounds := &fakeBoundsUseCase{}
	uc := &fakeDashboardUseCase{}

	app := setupApp(t, fakes{dashboard: uc, bounds: bounds})

	resp, _ := get(t, app, "/dashboard", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if !bounds.called {
		t.Fatalf("expected bounds lookup")
	}
	if !uc.lastInput.Start.Equal(time.Date(2016, 9, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %s", uc.lastInput.Start)
	}
}

func TestGetDashboard_NoData(t *testing.T) {
	bounds := &fakeBoundsUseCase{
		ExecuteFn: func(ctx context.Context) (*orders.Bounds, error) {
			return nil, usecase.ErrNoData
		},
	}
	uc := &fakeDashboardUseCase{}

	app := setupApp(t, fakes{dashboard: uc, bounds: bounds})

	resp, body := get(t, app, "/dashboard", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if uc.called {
		t.Fatalf("usecase should not be called without data")
	}
	if !strings.Contains(string(body), `"empty":true`) {
		t.Fatalf("expected empty state, got %s", body)
	}

	var out httpadapter.DashboardResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	breakdowns := map[string]httpadapter.BreakdownResponse{
		"product_category": out.ProductCategories,
		"customer_state":   out.CustomerStates,
		"customer_city":    out.CustomerCities,
		"order_status":     out.OrderStatuses,
	}
	for dim, b := range breakdowns {
		if b.Dimension != dim || !b.Empty || b.Rows == nil || len(b.Rows) != 0 {
			t.Fatalf("expected empty %s breakdown, got %+v", dim, b)
		}
	}
	if strings.Contains(string(body), `"rows":null`) {
		t.Fatalf("expected rows to render as [], got %s", body)
	}
}

// ------------------------------------------------------------
// DASHBOARD: ERRORS
// ------------------------------------------------------------

func TestGetDashboard_InvalidQueryParam(t *testing.T) {
	uc := &fakeDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
			t.Fatalf("usecase should not be called on invalid query params")
			return nil, nil
		},
	}

	app := setupApp(t, fakes{dashboard: uc})

	params := url.Values{}
	params.Set("start", "01/02/2018")
	params.Set("end", "2018-02-01")

	resp, _ := get(t, app, "/dashboard", params)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestGetDashboard_UsecaseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		ucError error
	}{
		{"invalid_query", usecase.ErrInvalidDashboardQuery},
		{"invalid_range", engine.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeDashboardUseCase{
				ExecuteFn: func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
					return nil, tt.ucError
				},
			}

			app := setupApp(t, fakes{dashboard: uc})

			params := url.Values{}
			params.Set("start", "2018-02-01")
			params.Set("end", "2018-01-01")

			resp, _ := get(t, app, "/dashboard", params)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestGetDashboard_InternalError(t *testing.T) {
	uc := &fakeDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error) {
			return nil, context.DeadlineExceeded
		},
	}

	app := setupApp(t, fakes{dashboard: uc})

	params := url.Values{}
	params.Set("start", "2018-01-01T00:00:00Z")
	params.Set("end", "2018-01-02T00:00:00Z")

	resp, _ := get(t, app, "/dashboard", params)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// BREAKDOWN
// ------------------------------------------------------------

func TestGetBreakdown_Success(t *testing.T) {
	uc := &fakeBreakdownUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetBreakdownInput) (*domain.Breakdown, error) {
			if in.Dimension != domain.DimensionCustomerCity {
				t.Fatalf("expected customer_city, got %s", in.Dimension)
			}
			if in.Limit != 10 {
				t.Fatalf("expected limit 10, got %d", in.Limit)
			}
			return &domain.Breakdown{
				Dimension: in.Dimension,
				Rows:      []domain.GroupCount{{Key: "sao paulo", Count: 15540}},
				Dominant:  "sao paulo",
			}, nil
		},
	}

	app := setupApp(t, fakes{breakdown: uc})

	params := url.Values{}
	params.Set("start", "2018-01-01")
	params.Set("end", "2018-01-31")
	params.Set("limit", "10")

	resp, body := get(t, app, "/dashboard/breakdowns/customer_city", params)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var out httpadapter.BreakdownResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Dominant != "sao paulo" || out.Empty {
		t.Fatalf("unexpected breakdown: %+v", out)
	}
}

func TestGetBreakdown_EmptyGroup(t *testing.T) {
	uc := &fakeBreakdownUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetBreakdownInput) (*domain.Breakdown, error) {
			return nil, engine.ErrEmptyGroup
		},
	}

	app := setupApp(t, fakes{breakdown: uc})

	resp, body := get(t, app, "/dashboard/breakdowns/order_status", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var out httpadapter.BreakdownResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Empty || out.Message == "" || out.Dimension != "order_status" {
		t.Fatalf("expected empty state, got %+v", out)
	}
}

func TestGetBreakdown_Errors(t *testing.T) {
	t.Run("invalid limit", func(t *testing.T) {
		uc := &fakeBreakdownUseCase{}
		app := setupApp(t, fakes{breakdown: uc})

		params := url.Values{}
		params.Set("limit", "-3")

		resp, _ := get(t, app, "/dashboard/breakdowns/order_status", params)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
		if uc.called {
			t.Fatalf("usecase should not be called on invalid limit")
		}
	})

	t.Run("invalid dimension", func(t *testing.T) {
		uc := &fakeBreakdownUseCase{
			ExecuteFn: func(ctx context.Context, in usecase.GetBreakdownInput) (*domain.Breakdown, error) {
				return nil, usecase.ErrInvalidDimension
			},
		}
		app := setupApp(t, fakes{breakdown: uc})

		resp, _ := get(t, app, "/dashboard/breakdowns/weekday", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
	})
}

// ------------------------------------------------------------
// BOUNDS
// ------------------------------------------------------------

func TestGetBounds(t *testing.T) {
	app := setupApp(t, fakes{})

	resp, body := get(t, app, "/dashboard/bounds", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var out httpadapter.BoundsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Min != "2016-09-15" || out.Max != "2018-09-03" {
		t.Fatalf("unexpected bounds: %+v", out)
	}
}

func TestGetBounds_InternalError(t *testing.T) {
	bounds := &fakeBoundsUseCase{
		ExecuteFn: func(ctx context.Context) (*orders.Bounds, error) {
			return nil, errors.New("db failure")
		},
	}

	app := setupApp(t, fakes{bounds: bounds})

	resp, _ := get(t, app, "/dashboard/bounds", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}
