package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is one line item of the order export.
// Empty categorical fields mean the value was missing in the source.
type OrderRecord struct {
	OrderID         string
	CustomerID      string
	CustomerState   string
	CustomerCity    string
	ProductID       string
	ProductCategory string
	Status          OrderStatus
	PaymentValue    decimal.Decimal
	ApprovedAt      *time.Time // nil -> excluded from time based views
}

// RecordSet is the read-only collection the analytics engine works on.
type RecordSet []OrderRecord

// NewRecordSet copies records and orders them by approval time, nil timestamps last.
func NewRecordSet(records []OrderRecord) RecordSet {
	out := make(RecordSet, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ApprovedAt, out[j].ApprovedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	return out
}

// Bounds is the earliest and latest approval time of a record set.
type Bounds struct {
	Min time.Time
	Max time.Time
}

// Bounds returns min/max approval time. ok is false when no record has one.
func (rs RecordSet) Bounds() (Bounds, bool) {
	var b Bounds
	found := false

	for _, r := range rs {
		if r.ApprovedAt == nil {
			continue
		}
		ts := *r.ApprovedAt
		if !found {
			b.Min, b.Max = ts, ts
			found = true
			continue
		}
		if ts.Before(b.Min) {
			b.Min = ts
		}
		if ts.After(b.Max) {
			b.Max = ts
		}
	}

	return b, found
}

// Between returns the records approved within [start, end], both bounds
// inclusive, keeping their order. Records without an approval time never
// pass; a reversed range matches nothing.
func (rs RecordSet) Between(start, end time.Time) RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.ApprovedAt == nil {
			continue
		}
		ts := *r.ApprovedAt
		if ts.Before(start) || ts.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// WithStatus returns the records whose status is one of statuses.
// An empty statuses list keeps everything.
func (rs RecordSet) WithStatus(statuses ...OrderStatus) RecordSet {
	if len(statuses) == 0 {
		return rs
	}

	allowed := make(map[OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}

	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if _, ok := allowed[r.Status]; ok {
			out = append(out, r)
		}
	}
	return out
}
