// Package calculator holds the pure money math over loan records.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/lendbook/internal/models"
)

// Outstanding returns money provided minus money returned, floored at zero.
// Finite amounts are subtracted as decimals so 0.3 - 0.1 does not leave float noise.
func Outstanding(provided, returned float64) float64 {
	if !finite(provided) || !finite(returned) {
		return math.Max(0, provided-returned)
	}
	diff := decimal.NewFromFloat(provided).Sub(decimal.NewFromFloat(returned))
	if !diff.IsPositive() {
		return 0
	}
	return diff.InexactFloat64()
}

// IsSettled reports whether a loan needs no further repayment: its status is
// "Paid" (any case) or nothing is outstanding.
func IsSettled(statusName string, outstanding float64) bool {
	return models.IsPaidName(statusName) || outstanding <= 0
}

// LoanOutstanding is Outstanding for a record.
func LoanOutstanding(loan models.LoanRecord) float64 {
	return Outstanding(loan.MoneyProvided, loan.MoneyReturned)
}

// Summarize groups records by status name and totals each group.
// Groups follow the order of statuses; names not in statuses are appended in
// first-seen order. The first entry, "All", covers every record.
func Summarize(statuses []models.Status, loans []models.LoanRecord) []models.LoanSummary {
	type acc struct {
		count                          int
		provided, returned, outstanding decimal.Decimal
	}

	order := []string{"All"}
	groups := map[string]*acc{"All": {}}
	for _, st := range statuses {
		if _, ok := groups[st.Name]; !ok {
			order = append(order, st.Name)
			groups[st.Name] = &acc{}
		}
	}

	add := func(a *acc, loan models.LoanRecord) {
		a.count++
		a.provided = a.provided.Add(safeDecimal(loan.MoneyProvided))
		a.returned = a.returned.Add(safeDecimal(loan.MoneyReturned))
		a.outstanding = a.outstanding.Add(safeDecimal(LoanOutstanding(loan)))
	}

	for _, loan := range loans {
		add(groups["All"], loan)
		g, ok := groups[loan.StatusName]
		if !ok {
			order = append(order, loan.StatusName)
			g = &acc{}
			groups[loan.StatusName] = g
		}
		add(g, loan)
	}

	out := make([]models.LoanSummary, 0, len(order))
	for _, name := range order {
		g := groups[name]
		out = append(out, models.LoanSummary{
			StatusName:    name,
			Count:         g.count,
			TotalProvided: g.provided.InexactFloat64(),
			TotalReturned: g.returned.InexactFloat64(),
			Outstanding:   g.outstanding.InexactFloat64(),
		})
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// safeDecimal converts v, treating non-finite values as zero.
func safeDecimal(v float64) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
