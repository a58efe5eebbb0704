package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"order-dashboard-service/internal/analytics/core/domain"
	"order-dashboard-service/internal/analytics/core/engine"
	orders "order-dashboard-service/internal/orders/core/domain"
	"order-dashboard-service/internal/orders/core/ports"
)

var (
	ErrInvalidDashboardQuery = errors.New("invalid dashboard query")
	ErrInvalidDimension      = errors.New("invalid breakdown dimension")
)

type GetDashboardInput struct {
	Start    time.Time
	End      time.Time
	Statuses []orders.OrderStatus // optional
}

type GetDashboardUseCase struct {
	reader    ports.OrderReaderPort
	topCities int
}

// NewGetDashboardUseCase builds the dashboard use case. topCities limits the
// city breakdown rows; <= 0 keeps every city.
func NewGetDashboardUseCase(reader ports.OrderReaderPort, topCities int) *GetDashboardUseCase {
	return &GetDashboardUseCase{reader: reader, topCities: topCities}
}

// Execute validates the window, loads the records and computes every view.
// An empty window is not an error: the dashboard comes back with Empty set.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, in GetDashboardInput) (*domain.Dashboard, error) {
	records, err := loadWindow(ctx, uc.reader, in.Start, in.End, in.Statuses)
	if err != nil {
		return nil, err
	}

	dash := &domain.Dashboard{Start: in.Start, End: in.End}

	if len(records) == 0 {
		zerolog.Ctx(ctx).Debug().Time("start", in.Start).Time("end", in.End).Msg("dashboard window is empty")
		return emptyDashboard(dash), nil
	}

	// records is shared read-only between the aggregations
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		dash.DailyOrders = engine.DailyOrdersAndRevenue(records)
		dash.Totals = engine.Totals(dash.DailyOrders)
		return nil
	})
	g.Go(func() error {
		dash.DailySpend = engine.DailySpend(records)
		return nil
	})
	g.Go(breakdownInto(&dash.ProductCategories, records, domain.DimensionProductCategory, 0))
	g.Go(breakdownInto(&dash.CustomerStates, records, domain.DimensionCustomerState, 0))
	g.Go(breakdownInto(&dash.CustomerCities, records, domain.DimensionCustomerCity, uc.topCities))
	g.Go(breakdownInto(&dash.OrderStatuses, records, domain.DimensionOrderStatus, 0))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("records", len(records)).
		Int("days", len(dash.DailyOrders)).
		Msg("dashboard computed")

	return dash, nil
}

// breakdownInto computes one breakdown into dst. A dimension whose keys are
// all null in this window yields an empty breakdown rather than an error.
func breakdownInto(dst *domain.Breakdown, records orders.RecordSet, dim domain.Dimension, limit int) func() error {
	return func() error {
		b, err := engine.Breakdown(records, dim)
		if errors.Is(err, engine.ErrEmptyGroup) {
			*dst = domain.Breakdown{Dimension: dim, Rows: []domain.GroupCount{}}
			return nil
		}
		if err != nil {
			return err
		}
		*dst = b.Top(limit)
		return nil
	}
}

func emptyDashboard(d *domain.Dashboard) *domain.Dashboard {
	d.Empty = true
	d.DailyOrders = []domain.DailyOrders{}
	d.DailySpend = []domain.DailySpend{}
	d.Totals = engine.Totals(nil)
	for dim, dst := range map[domain.Dimension]*domain.Breakdown{
		domain.DimensionProductCategory: &d.ProductCategories,
		domain.DimensionCustomerState:   &d.CustomerStates,
		domain.DimensionCustomerCity:    &d.CustomerCities,
		domain.DimensionOrderStatus:     &d.OrderStatuses,
	} {
		*dst = domain.Breakdown{Dimension: dim, Rows: []domain.GroupCount{}}
	}
	return d
}

// loadWindow validates [start, end], loads it through the reader and applies
// the range and status filters, whatever the reader already narrowed.
func loadWindow(ctx context.Context, reader ports.OrderReaderPort, start, end time.Time, statuses []orders.OrderStatus) (orders.RecordSet, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrInvalidDashboardQuery
	}
	if start.After(end) {
		return nil, engine.ErrInvalidRange
	}

	loaded, err := reader.LoadOrders(ctx, ports.OrderFilter{From: start, To: end, Statuses: statuses})
	if err != nil {
		return nil, err
	}

	records, err := engine.FilterRange(loaded, start, end)
	if err != nil {
		return nil, err
	}
	return engine.FilterStatus(records, statuses...), nil
}
