package fiber

import (
	"github.com/shopspring/decimal"

	"order-dashboard-service/internal/analytics/core/domain"
)

const dateLayout = "2006-01-02"

type DailyOrdersResponse struct {
	Date       string          `json:"date" example:"2018-01-01"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue" swaggertype:"string" example:"162.49"`
}

type DailySpendResponse struct {
	Date       string          `json:"date" example:"2018-01-01"`
	TotalSpend decimal.Decimal `json:"total_spend" swaggertype:"string" example:"162.49"`
}

type GroupCountResponse struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type BreakdownResponse struct {
	Dimension string               `json:"dimension" example:"customer_state"`
	Dominant  string               `json:"dominant,omitempty" example:"SP"`
	Rows      []GroupCountResponse `json:"rows"`
	Empty     bool                 `json:"empty"`
	Message   string               `json:"message,omitempty"`
}

type TotalsResponse struct {
	OrderCount     int64           `json:"order_count"`
	Revenue        decimal.Decimal `json:"revenue" swaggertype:"string" example:"1234567.89"`
	RevenueDisplay string          `json:"revenue_display" example:"Rp 1.234.567,89"`
}

type DashboardResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`

	Totals            TotalsResponse        `json:"totals"`
	DailyOrders       []DailyOrdersResponse `json:"daily_orders"`
	DailySpend        []DailySpendResponse  `json:"daily_spend"`
	ProductCategories BreakdownResponse     `json:"product_categories"`
	CustomerStates    BreakdownResponse     `json:"customer_states"`
	CustomerCities    BreakdownResponse     `json:"customer_cities"`
	OrderStatuses     BreakdownResponse     `json:"order_statuses"`

	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

type BoundsResponse struct {
	Min   string `json:"min,omitempty" example:"2016-09-15"`
	Max   string `json:"max,omitempty" example:"2018-09-03"`
	Empty bool   `json:"empty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"start is after end"`
}

const emptyStateMessage = "no orders in the selected date range"

func toBreakdownResponse(b domain.Breakdown) BreakdownResponse {
	resp := BreakdownResponse{
		Dimension: string(b.Dimension),
		Dominant:  b.Dominant,
		Rows:      make([]GroupCountResponse, 0, len(b.Rows)),
	}
	for _, r := range b.Rows {
		resp.Rows = append(resp.Rows, GroupCountResponse{Key: r.Key, Count: r.Count})
	}
	if len(resp.Rows) == 0 {
		resp.Empty = true
		resp.Message = emptyStateMessage
	}
	return resp
}

func toDashboardResponse(d *domain.Dashboard, money *MoneyFormatter) DashboardResponse {
	resp := DashboardResponse{
		Start: d.Start.Format(dateLayout),
		End:   d.End.Format(dateLayout),
		Totals: TotalsResponse{
			OrderCount:     d.Totals.OrderCount,
			Revenue:        d.Totals.Revenue,
			RevenueDisplay: money.Format(d.Totals.Revenue),
		},
		DailyOrders:       make([]DailyOrdersResponse, 0, len(d.DailyOrders)),
		DailySpend:        make([]DailySpendResponse, 0, len(d.DailySpend)),
		ProductCategories: toBreakdownResponse(d.ProductCategories),
		CustomerStates:    toBreakdownResponse(d.CustomerStates),
		CustomerCities:    toBreakdownResponse(d.CustomerCities),
		OrderStatuses:     toBreakdownResponse(d.OrderStatuses),
		Empty:             d.Empty,
	}

	for _, o := range d.DailyOrders {
		resp.DailyOrders = append(resp.DailyOrders, DailyOrdersResponse{
			Date:       o.Date.Format(dateLayout),
			OrderCount: o.OrderCount,
			Revenue:    o.Revenue,
		})
	}
	for _, s := range d.DailySpend {
		resp.DailySpend = append(resp.DailySpend, DailySpendResponse{
			Date:       s.Date.Format(dateLayout),
			TotalSpend: s.TotalSpend,
		})
	}

	if d.Empty {
		resp.Message = emptyStateMessage
	}
	return resp
}
