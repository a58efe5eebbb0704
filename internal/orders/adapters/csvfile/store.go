package csvfile

import (
	"context"

	"order-dashboard-service/internal/orders/core/domain"
	"order-dashboard-service/internal/orders/core/ports"
)

// Store serves an in-memory record set loaded once at startup.
// The record set is never mutated, so concurrent reads need no locking.
type Store struct {
	records domain.RecordSet
}

var _ ports.OrderReaderPort = (*Store)(nil)

func NewStore(records domain.RecordSet) *Store {
	return &Store{records: records}
}

func (s *Store) LoadOrders(ctx context.Context, f ports.OrderFilter) (domain.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.records.Between(f.From, f.To).WithStatus(f.Statuses...), nil
}

func (s *Store) Bounds(ctx context.Context) (domain.Bounds, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bounds{}, false, err
	}
	b, ok := s.records.Bounds()
	return b, ok, nil
}
