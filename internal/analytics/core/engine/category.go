package engine

import (
	"cmp"
	"slices"

	"order-dashboard-service/internal/analytics/core/domain"
	orders "order-dashboard-service/internal/orders/core/domain"
)

// FieldFunc extracts a string field from a record. "" is the null value.
type FieldFunc func(orders.OrderRecord) string

// GroupSpec describes one categorical breakdown.
//
// Key supplies the grouping key. When Distinct is nil every row counts once;
// otherwise a group counts the distinct non-null values Distinct returns.
type GroupSpec struct {
	Dimension domain.Dimension
	Key       FieldFunc
	Distinct  FieldFunc
}

func customerID(r orders.OrderRecord) string { return r.CustomerID }

var specs = map[domain.Dimension]GroupSpec{
	domain.DimensionProductCategory: {
		Dimension: domain.DimensionProductCategory,
		Key:       func(r orders.OrderRecord) string { return r.ProductCategory },
	},
	domain.DimensionCustomerState: {
		Dimension: domain.DimensionCustomerState,
		Key:       func(r orders.OrderRecord) string { return r.CustomerState },
		Distinct:  customerID,
	},
	domain.DimensionCustomerCity: {
		Dimension: domain.DimensionCustomerCity,
		Key:       func(r orders.OrderRecord) string { return r.CustomerCity },
		Distinct:  customerID,
	},
	domain.DimensionOrderStatus: {
		Dimension: domain.DimensionOrderStatus,
		Key:       func(r orders.OrderRecord) string { return r.Status.String() },
	},
}

// SpecFor returns the built-in spec of a dimension.
func SpecFor(dim domain.Dimension) (GroupSpec, bool) {
	s, ok := specs[dim]
	return s, ok
}

type groupAcc struct {
	rows     int64
	distinct map[string]struct{}
}

// GroupCount groups records by spec.Key, counts each group and returns the
// rows sorted by count desc then key asc. The dominant key is the first row.
// Records with a null key are skipped. It fails with ErrEmptyGroup when no
// group can be formed.
func GroupCount(records orders.RecordSet, spec GroupSpec) (domain.Breakdown, error) {
	if len(records) == 0 {
		return domain.Breakdown{}, ErrEmptyGroup
	}

	groups := make(map[string]*groupAcc)
	for _, r := range records {
		key := spec.Key(r)
		if key == "" {
			continue
		}

		acc, ok := groups[key]
		if !ok {
			acc = &groupAcc{}
			if spec.Distinct != nil {
				acc.distinct = make(map[string]struct{})
			}
			groups[key] = acc
		}

		acc.rows++
		if spec.Distinct != nil {
			if id := spec.Distinct(r); id != "" {
				acc.distinct[id] = struct{}{}
			}
		}
	}

	if len(groups) == 0 {
		return domain.Breakdown{}, ErrEmptyGroup
	}

	rows := make([]domain.GroupCount, 0, len(groups))
	for key, acc := range groups {
		count := acc.rows
		if spec.Distinct != nil {
			count = int64(len(acc.distinct))
		}
		rows = append(rows, domain.GroupCount{Key: key, Count: count})
	}
	SortRows(rows)

	return domain.Breakdown{
		Dimension: spec.Dimension,
		Rows:      rows,
		Dominant:  rows[0].Key,
	}, nil
}

// SortRows orders rows by count desc, ties by key asc. Sorting an already
// sorted slice leaves it unchanged.
func SortRows(rows []domain.GroupCount) {
	slices.SortStableFunc(rows, func(a, b domain.GroupCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
}

// Breakdown runs GroupCount with the built-in spec of dim.
func Breakdown(records orders.RecordSet, dim domain.Dimension) (domain.Breakdown, error) {
	spec, ok := SpecFor(dim)
	if !ok {
		return domain.Breakdown{}, ErrUnknownDimension
	}
	return GroupCount(records, spec)
}

func ProductCategories(records orders.RecordSet) (domain.Breakdown, error) {
	return GroupCount(records, specs[domain.DimensionProductCategory])
}

func CustomerStates(records orders.RecordSet) (domain.Breakdown, error) {
	return GroupCount(records, specs[domain.DimensionCustomerState])
}

func CustomerCities(records orders.RecordSet) (domain.Breakdown, error) {
	return GroupCount(records, specs[domain.DimensionCustomerCity])
}

// OrderStatuses exposes the full status frequency table, not only the dominant status.
func OrderStatuses(records orders.RecordSet) (domain.Breakdown, error) {
	return GroupCount(records, specs[domain.DimensionOrderStatus])
}
