package engine

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"order-dashboard-service/internal/analytics/core/domain"
	orders "order-dashboard-service/internal/orders/core/domain"
)

type dayBucket struct {
	date    time.Time
	orders  map[string]struct{}
	revenue decimal.Decimal
}

// bucketByDay groups records by the calendar day of their approval time,
// in the timestamp's own location. Buckets come back in ascending order.
// Days without records are not synthesized.
func bucketByDay(records orders.RecordSet, trackOrders bool) []*dayBucket {
	byDay := make(map[int64]*dayBucket)

	for _, r := range records {
		if r.ApprovedAt == nil {
			continue
		}
		day := startOfDay(*r.ApprovedAt)
		key := day.Unix()

		b, ok := byDay[key]
		if !ok {
			b = &dayBucket{date: day, revenue: decimal.Zero}
			if trackOrders {
				b.orders = make(map[string]struct{})
			}
			byDay[key] = b
		}

		// payment lines are summed per row, never deduplicated
		b.revenue = b.revenue.Add(r.PaymentValue)
		if trackOrders && r.OrderID != "" {
			b.orders[r.OrderID] = struct{}{}
		}
	}

	buckets := make([]*dayBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, b)
	}
	slices.SortFunc(buckets, func(a, b *dayBucket) int {
		return a.date.Compare(b.date)
	})

	return buckets
}

func startOfDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// DailyOrdersAndRevenue returns, per approval day, the number of distinct
// order ids and the sum of payment values.
func DailyOrdersAndRevenue(records orders.RecordSet) []domain.DailyOrders {
	buckets := bucketByDay(records, true)

	out := make([]domain.DailyOrders, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.DailyOrders{
			Date:       b.date,
			OrderCount: int64(len(b.orders)),
			Revenue:    b.revenue,
		})
	}
	return out
}

// DailySpend returns the sum of payment values per approval day.
func DailySpend(records orders.RecordSet) []domain.DailySpend {
	buckets := bucketByDay(records, false)

	out := make([]domain.DailySpend, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.DailySpend{
			Date:       b.date,
			TotalSpend: b.revenue,
		})
	}
	return out
}

// Totals reduces the daily series to whole-window figures.
func Totals(daily []domain.DailyOrders) domain.Totals {
	t := domain.Totals{Revenue: decimal.Zero}
	for _, d := range daily {
		t.OrderCount += d.OrderCount
		t.Revenue = t.Revenue.Add(d.Revenue)
	}
	return t
}
