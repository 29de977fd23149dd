package models

import "strings"

// PaidStatusName is the status name that marks a loan record as settled.
const PaidStatusName = "Paid"

// Status is a repayment state label. The set is seeded once and is data-driven,
// so code compares Name rather than ID.
type Status struct {
	ID        int64
	Name      string
	Color     string
	SortOrder int
}

// IsPaidName reports whether name is the "Paid" status, ignoring case.
func IsPaidName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), PaidStatusName)
}

// DefaultStatuses is the taxonomy seeded into an empty store.
func DefaultStatuses() []Status {
	return []Status{
		{Name: "Pending", Color: "#FFA500", SortOrder: 1},
		{Name: "Partially Paid", Color: "#1E90FF", SortOrder: 2},
		{Name: PaidStatusName, Color: "#32CD32", SortOrder: 3},
		{Name: "Overdue", Color: "#FF4500", SortOrder: 4},
	}
}
