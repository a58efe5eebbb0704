package domain

import "strings"

// OrderStatus is an open enumeration. Values outside the known set are
// kept verbatim so they still form their own group.
type OrderStatus string

const (
	StatusCreated     OrderStatus = "created"
	StatusApproved    OrderStatus = "approved"
	StatusInvoiced    OrderStatus = "invoiced"
	StatusProcessing  OrderStatus = "processing"
	StatusShipped     OrderStatus = "shipped"
	StatusDelivered   OrderStatus = "delivered"
	StatusUnavailable OrderStatus = "unavailable"
	StatusCanceled    OrderStatus = "canceled"
)

var knownStatuses = map[OrderStatus]struct{}{
	StatusCreated:     {},
	StatusApproved:    {},
	StatusInvoiced:    {},
	StatusProcessing:  {},
	StatusShipped:     {},
	StatusDelivered:   {},
	StatusUnavailable: {},
	StatusCanceled:    {},
}

// ParseOrderStatus normalizes a raw status (trim + lower case).
// An empty result is the null status.
func ParseOrderStatus(raw string) OrderStatus {
	return OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether s belongs to the known vocabulary.
func (s OrderStatus) Known() bool {
	_, ok := knownStatuses[s]
	return ok
}

func (s OrderStatus) String() string {
	return string(s)
}
