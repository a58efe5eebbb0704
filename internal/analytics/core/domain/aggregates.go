package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyOrders is one calendar day of the orders/revenue series.
type DailyOrders struct {
	Date       time.Time // midnight of the bucket day
	OrderCount int64     // distinct order ids
	Revenue    decimal.Decimal
}

// DailySpend is one calendar day of the spend series.
type DailySpend struct {
	Date       time.Time
	TotalSpend decimal.Decimal
}

// GroupCount is one row of a categorical breakdown.
type GroupCount struct {
	Key   string
	Count int64
}

// Dimension names the categorical field a breakdown groups by.
type Dimension string

const (
	DimensionProductCategory Dimension = "product_category"
	DimensionCustomerState   Dimension = "customer_state"
	DimensionCustomerCity    Dimension = "customer_city"
	DimensionOrderStatus     Dimension = "order_status"
)

// Breakdown is a sorted categorical breakdown plus its dominant key.
type Breakdown struct {
	Dimension Dimension
	Rows      []GroupCount // count desc, key asc
	Dominant  string
}

// Top returns the breakdown limited to the first n rows.
// n <= 0 keeps every row. The dominant key is not affected.
func (b Breakdown) Top(n int) Breakdown {
	if n <= 0 || n >= len(b.Rows) {
		return b
	}
	rows := make([]GroupCount, n)
	copy(rows, b.Rows[:n])
	b.Rows = rows
	return b
}

// Totals are whole-window reductions over the daily series.
type Totals struct {
	OrderCount int64
	Revenue    decimal.Decimal
}

// Dashboard bundles every derived view of one filtered window.
type Dashboard struct {
	Start time.Time
	End   time.Time

	Totals      Totals
	DailyOrders []DailyOrders
	DailySpend  []DailySpend

	ProductCategories Breakdown
	CustomerStates    Breakdown
	CustomerCities    Breakdown
	OrderStatuses     Breakdown

	// Empty is set when the window holds no records; every table is then empty.
	Empty bool
}
