package usecase

import (
	"context"
	"time"

	"order-dashboard-service/internal/analytics/core/domain"
	"order-dashboard-service/internal/analytics/core/engine"
	orders "order-dashboard-service/internal/orders/core/domain"
	"order-dashboard-service/internal/orders/core/ports"
)

type GetBreakdownInput struct {
	Dimension domain.Dimension
	Start     time.Time
	End       time.Time
	Statuses  []orders.OrderStatus
	Limit     int // <= 0 -> every row
}

type GetBreakdownUseCase struct {
	reader ports.OrderReaderPort
}

func NewGetBreakdownUseCase(reader ports.OrderReaderPort) *GetBreakdownUseCase {
	return &GetBreakdownUseCase{reader: reader}
}

// Execute computes a single breakdown. engine.ErrEmptyGroup is returned
// as-is so callers can render an empty state.
func (uc *GetBreakdownUseCase) Execute(ctx context.Context, in GetBreakdownInput) (*domain.Breakdown, error) {
	if _, ok := engine.SpecFor(in.Dimension); !ok {
		return nil, ErrInvalidDimension
	}

	records, err := loadWindow(ctx, uc.reader, in.Start, in.End, in.Statuses)
	if err != nil {
		return nil, err
	}

	b, err := engine.Breakdown(records, in.Dimension)
	if err != nil {
		return nil, err
	}

	b = b.Top(in.Limit)
	return &b, nil
}
