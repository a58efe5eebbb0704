package ports

import (
	"context"
	"time"

	"order-dashboard-service/internal/orders/core/domain"
)

type OrderFilter struct {
	From     time.Time
	To       time.Time
	Statuses []domain.OrderStatus // optional, empty -> all statuses
}

type OrderReaderPort interface {
	// LoadOrders returns the records approved within [From, To].
	// Implementations may return a superset; callers re-apply the range filter.
	LoadOrders(ctx context.Context, f OrderFilter) (domain.RecordSet, error)

	// Bounds returns the min/max approval time of the whole source.
	// ok = false when the source has no approved records.
	Bounds(ctx context.Context) (b domain.Bounds, ok bool, err error)
}
