package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"order-dashboard-service/internal/orders/core/domain"
)

var ErrMissingColumn = errors.New("missing required column")

// timestamp layouts accepted for order_approved_at, tried in order
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

type column int

const (
	colOrderID column = iota
	colCustomerID
	colCustomerState
	colCustomerCity
	colProductID
	colProductCategory
	colOrderStatus
	colPaymentValue
	colApprovedAt
	columnCount
)

// header names per column; the first one is canonical
var columnNames = [columnCount][]string{
	colOrderID:         {"order_id"},
	colCustomerID:      {"customer_id"},
	colCustomerState:   {"customer_state"},
	colCustomerCity:    {"customer_city"},
	colProductID:       {"product_id"},
	colProductCategory: {"product_category_name_english", "product_category"},
	colOrderStatus:     {"order_status"},
	colPaymentValue:    {"payment_value"},
	colApprovedAt:      {"order_approved_at"},
}

type Options struct {
	// Location used for timestamps without an explicit offset. Defaults to UTC.
	Location *time.Location
}

// LoadFile reads an order export from path.
func LoadFile(ctx context.Context, path string, opts Options) (domain.RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders csv: %w", err)
	}
	defer f.Close()

	return Load(ctx, f, opts)
}

// Load parses an order export. Extra columns are ignored. Empty cells
// become null values; a cell that cannot be parsed fails the whole load.
func Load(ctx context.Context, r io.Reader, opts Options) (domain.RecordSet, error) {
	log := zerolog.Ctx(ctx)
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read orders csv header: %w", err)
	}
	index, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		records []domain.OrderRecord
		unknown = make(map[domain.OrderStatus]int)
		row     = 1
	)

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("read orders csv row %d: %w", row, err)
		}

		rec, err := parseRow(fields, index, loc)
		if err != nil {
			return nil, fmt.Errorf("orders csv row %d: %w", row, err)
		}
		if rec.Status != "" && !rec.Status.Known() {
			unknown[rec.Status]++
		}
		records = append(records, rec)
	}

	for status, n := range unknown {
		log.Warn().Str("status", status.String()).Int("rows", n).Msg("unknown order status kept as its own group")
	}
	log.Info().Int("rows", len(records)).Msg("orders csv loaded")

	return domain.NewRecordSet(records), nil
}

func indexColumns(header []string) ([columnCount]int, error) {
	var index [columnCount]int
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))
		// leading unnamed index column from a dataframe export
		if h == "" {
			continue
		}
		pos[h] = i
	}

	for c := column(0); c < columnCount; c++ {
		found := false
		for _, name := range columnNames[c] {
			if i, ok := pos[name]; ok {
				index[c] = i
				found = true
				break
			}
		}
		if !found {
			return index, fmt.Errorf("%w: %s", ErrMissingColumn, columnNames[c][0])
		}
	}

	return index, nil
}

func parseRow(fields []string, index [columnCount]int, loc *time.Location) (domain.OrderRecord, error) {
	get := func(c column) string {
		i := index[c]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := domain.OrderRecord{
		OrderID:         get(colOrderID),
		CustomerID:      get(colCustomerID),
		CustomerState:   get(colCustomerState),
		CustomerCity:    get(colCustomerCity),
		ProductID:       get(colProductID),
		ProductCategory: get(colProductCategory),
		Status:          domain.ParseOrderStatus(get(colOrderStatus)),
		PaymentValue:    decimal.Zero,
	}

	if raw := get(colPaymentValue); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return rec, fmt.Errorf("invalid payment_value %q: %w", raw, err)
		}
		if v.IsNegative() {
			return rec, fmt.Errorf("negative payment_value %q", raw)
		}
		rec.PaymentValue = v
	}

	if raw := get(colApprovedAt); raw != "" {
		ts, err := parseTime(raw, loc)
		if err != nil {
			return rec, fmt.Errorf("invalid order_approved_at %q: %w", raw, err)
		}
		rec.ApprovedAt = &ts
	}

	return rec, nil
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		ts, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
