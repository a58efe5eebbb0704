package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"order-dashboard-service/internal/orders/core/domain"
	"order-dashboard-service/internal/orders/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type OrderRepository struct {
	db       DB
	location *time.Location
}

var _ ports.OrderReaderPort = (*OrderRepository)(nil)

// NewOrderRepository builds a reader over the orders table. order_approved_at
// is a timestamp without time zone holding wall time in loc, the same
// reading the CSV export gets.
func NewOrderRepository(db DB, loc *time.Location) *OrderRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderRepository{db: db, location: loc}
}

const selectOrdersSQL = `
SELECT
    order_id,
    customer_id,
    customer_state,
    customer_city,
    product_id,
    product_category,
    order_status,
    payment_value,
    order_approved_at
FROM orders
WHERE order_approved_at BETWEEN $1 AND $2`

const boundsSQL = `
SELECT
    MIN(order_approved_at),
    MAX(order_approved_at)
FROM orders`

func (r *OrderRepository) LoadOrders(ctx context.Context, f ports.OrderFilter) (domain.RecordSet, error) {
	query := selectOrdersSQL
	args := []any{r.naive(f.From), r.naive(f.To)}

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = s.String()
		}
		query += " AND order_status = ANY($3)"
		args = append(args, pq.Array(statuses))
	}
	query += "\nORDER BY order_approved_at, order_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.OrderRecord
	for rows.Next() {
		rec, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.NewRecordSet(records), nil
}

func (r *OrderRepository) scanOrder(rows RowScanner) (domain.OrderRecord, error) {
	var (
		orderID, customerID, state, city sql.NullString
		productID, category, status      sql.NullString
		payment                          decimal.NullDecimal
		approvedAt                       sql.NullTime
	)

	if err := rows.Scan(&orderID, &customerID, &state, &city, &productID, &category, &status, &payment, &approvedAt); err != nil {
		return domain.OrderRecord{}, fmt.Errorf("scan order row: %w", err)
	}

	rec := domain.OrderRecord{
		OrderID:         orderID.String,
		CustomerID:      customerID.String,
		CustomerState:   state.String,
		CustomerCity:    city.String,
		ProductID:       productID.String,
		ProductCategory: category.String,
		Status:          domain.ParseOrderStatus(status.String),
		PaymentValue:    decimal.Zero,
	}
	if payment.Valid {
		rec.PaymentValue = payment.Decimal
	}
	if approvedAt.Valid {
		ts := r.wallTime(approvedAt.Time)
		rec.ApprovedAt = &ts
	}

	return rec, nil
}

func (r *OrderRepository) Bounds(ctx context.Context) (domain.Bounds, bool, error) {
	rows, err := r.db.QueryContext(ctx, boundsSQL)
	if err != nil {
		return domain.Bounds{}, false, err
	}
	defer rows.Close()

	var minTS, maxTS sql.NullTime
	if rows.Next() {
		if err := rows.Scan(&minTS, &maxTS); err != nil {
			return domain.Bounds{}, false, fmt.Errorf("scan bounds: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return domain.Bounds{}, false, err
	}

	if !minTS.Valid || !maxTS.Valid {
		return domain.Bounds{}, false, nil
	}

	return domain.Bounds{
		Min: r.wallTime(minTS.Time),
		Max: r.wallTime(maxTS.Time),
	}, true, nil
}

// wallTime reads a naive column value as wall time in the repository location.
func (r *OrderRepository) wallTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), r.location)
}

// naive turns a query bound into the column's wall time representation.
func (r *OrderRepository) naive(t time.Time) time.Time {
	t = t.In(r.location)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
