package engine

import (
	"time"

	orders "order-dashboard-service/internal/orders/core/domain"
)

// FilterRange keeps the records approved within [start, end], both bounds
// inclusive. Records without an approval time never pass. Input order is kept.
func FilterRange(records orders.RecordSet, start, end time.Time) (orders.RecordSet, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	return records.Between(start, end), nil
}

// FilterStatus keeps the records whose status is one of statuses.
// An empty statuses list keeps everything.
func FilterStatus(records orders.RecordSet, statuses ...orders.OrderStatus) orders.RecordSet {
	return records.WithStatus(statuses...)
}
