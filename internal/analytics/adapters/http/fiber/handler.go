package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"order-dashboard-service/internal/analytics/core/domain"
	"order-dashboard-service/internal/analytics/core/engine"
	"order-dashboard-service/internal/analytics/core/usecase"
	orders "order-dashboard-service/internal/orders/core/domain"
)

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.GetDashboardInput) (*domain.Dashboard, error)
}

type GetBreakdownUseCase interface {
	Execute(ctx context.Context, in usecase.GetBreakdownInput) (*domain.Breakdown, error)
}

type GetBoundsUseCase interface {
	Execute(ctx context.Context) (*orders.Bounds, error)
}

type DashboardHandler struct {
	dashboardUC GetDashboardUseCase
	breakdownUC GetBreakdownUseCase
	boundsUC    GetBoundsUseCase
	money       *MoneyFormatter
	location    *time.Location
}

// NewDashboardHandler wires the dashboard endpoints. Date-only query values
// are interpreted in loc.
func NewDashboardHandler(
	dashboardUC GetDashboardUseCase,
	breakdownUC GetBreakdownUseCase,
	boundsUC GetBoundsUseCase,
	money *MoneyFormatter,
	loc *time.Location,
) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		breakdownUC: breakdownUC,
		boundsUC:    boundsUC,
		money:       money,
		location:    loc,
	}
}

// Register mounts the handler's routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.GetDashboard)
	router.Get("/dashboard/bounds", h.GetBounds)
	router.Get("/dashboard/breakdowns/:dimension", h.GetBreakdown)
}

// GetDashboard godoc
// @Summary Dashboard views for a date range
// @Description Daily orders/revenue, daily spend and category breakdowns with dominant keys
// @Tags Dashboard
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD or RFC3339), defaults to the first approved order"
// @Param end query string false "End date (YYYY-MM-DD covers the whole day, or RFC3339), defaults to the last approved order"
// @Param status query string false "Comma separated order statuses"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	start, end, ok, err := h.window(ctx, c)
	if err != nil {
		return h.fail(c, err)
	}
	if !ok {
		return c.Status(http.StatusOK).JSON(DashboardResponse{
			DailyOrders:       []DailyOrdersResponse{},
			DailySpend:        []DailySpendResponse{},
			ProductCategories: emptyBreakdown(domain.DimensionProductCategory),
			CustomerStates:    emptyBreakdown(domain.DimensionCustomerState),
			CustomerCities:    emptyBreakdown(domain.DimensionCustomerCity),
			OrderStatuses:     emptyBreakdown(domain.DimensionOrderStatus),
			Empty:             true,
			Message:           emptyStateMessage,
		})
	}

	in := usecase.GetDashboardInput{
		Start:    start,
		End:      end,
		Statuses: parseStatuses(c.Query("status", "")),
	}

	res, err := h.dashboardUC.Execute(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(toDashboardResponse(res, h.money))
}

// GetBreakdown godoc
// @Summary One categorical breakdown
// @Description Rows sorted by count desc (ties by key asc) plus the dominant key
// @Tags Dashboard
// @Produce json
// @Param dimension path string true "product_category | customer_state | customer_city | order_status"
// @Param start query string false "Start date"
// @Param end query string false "End date"
// @Param status query string false "Comma separated order statuses"
// @Param limit query int false "Max rows"
// @Success 200 {object} BreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/breakdowns/{dimension} [get]
func (h *DashboardHandler) GetBreakdown(c *fiber.Ctx) error {
	ctx := c.UserContext()
	dim := domain.Dimension(c.Params("dimension"))

	limit := 0
	if raw := c.Query("limit", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: "invalid 'limit' parameter",
			})
		}
		limit = n
	}

	start, end, ok, err := h.window(ctx, c)
	if err != nil {
		return h.fail(c, err)
	}
	if !ok {
		return c.Status(http.StatusOK).JSON(emptyBreakdown(dim))
	}

	res, err := h.breakdownUC.Execute(ctx, usecase.GetBreakdownInput{
		Dimension: dim,
		Start:     start,
		End:       end,
		Statuses:  parseStatuses(c.Query("status", "")),
		Limit:     limit,
	})
	if errors.Is(err, engine.ErrEmptyGroup) {
		return c.Status(http.StatusOK).JSON(emptyBreakdown(dim))
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(toBreakdownResponse(*res))
}

// GetBounds godoc
// @Summary Date range of the data
// @Description Earliest and latest order approval date, used as the default range
// @Tags Dashboard
// @Produce json
// @Success 200 {object} BoundsResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/bounds [get]
func (h *DashboardHandler) GetBounds(c *fiber.Ctx) error {
	b, err := h.boundsUC.Execute(c.UserContext())
	if errors.Is(err, usecase.ErrNoData) {
		return c.Status(http.StatusOK).JSON(BoundsResponse{Empty: true})
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(BoundsResponse{
		Min: b.Min.Format(dateLayout),
		Max: b.Max.Format(dateLayout),
	})
}

// window resolves the requested range. Missing bounds fall back to the data
// bounds; ok is false when there is no data at all.
func (h *DashboardHandler) window(ctx context.Context, c *fiber.Ctx) (start, end time.Time, ok bool, err error) {
	rawStart := c.Query("start", "")
	rawEnd := c.Query("end", "")

	if rawStart == "" || rawEnd == "" {
		b, err := h.boundsUC.Execute(ctx)
		if errors.Is(err, usecase.ErrNoData) {
			return start, end, false, nil
		}
		if err != nil {
			return start, end, false, err
		}
		start, end = b.Min, b.Max
	}

	if rawStart != "" {
		if start, err = parseQueryTime(rawStart, h.location, false); err != nil {
			return start, end, false, badQuery("invalid 'start' parameter")
		}
	}
	if rawEnd != "" {
		if end, err = parseQueryTime(rawEnd, h.location, true); err != nil {
			return start, end, false, badQuery("invalid 'end' parameter")
		}
	}

	return start, end, true, nil
}

// parseQueryTime accepts RFC3339 or a date. A date used as an upper bound
// covers the whole day.
func parseQueryTime(raw string, loc *time.Location, upper bool) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	day, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, err
	}
	if upper {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}

func parseStatuses(raw string) []orders.OrderStatus {
	if raw == "" {
		return nil
	}
	var out []orders.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		if s := orders.ParseOrderStatus(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func emptyBreakdown(dim domain.Dimension) BreakdownResponse {
	return BreakdownResponse{
		Dimension: string(dim),
		Rows:      []GroupCountResponse{},
		Empty:     true,
		Message:   emptyStateMessage,
	}
}

type queryError struct{ msg string }

func (e *queryError) Error() string { return e.msg }

func badQuery(msg string) error { return &queryError{msg: msg} }

func (h *DashboardHandler) fail(c *fiber.Ctx, err error) error {
	var qe *queryError
	switch {
	case errors.As(err, &qe):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: qe.msg,
		})
	case errors.Is(err, usecase.ErrInvalidDashboardQuery),
		errors.Is(err, usecase.ErrInvalidDimension),
		errors.Is(err, engine.ErrInvalidRange):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	default:
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("dashboard request failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
