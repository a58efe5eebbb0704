package usecase

import (
	"context"
	"errors"

	orders "order-dashboard-service/internal/orders/core/domain"
	"order-dashboard-service/internal/orders/core/ports"
)

var ErrNoData = errors.New("no approved orders available")

type GetBoundsUseCase struct {
	reader ports.OrderReaderPort
}

func NewGetBoundsUseCase(reader ports.OrderReaderPort) *GetBoundsUseCase {
	return &GetBoundsUseCase{reader: reader}
}

// Execute returns the earliest and latest approval time, the default date
// range of the dashboard.
func (uc *GetBoundsUseCase) Execute(ctx context.Context) (*orders.Bounds, error) {
	b, ok, err := uc.reader.Bounds(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoData
	}
	return &b, nil
}
