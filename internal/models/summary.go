package models

import (
	"time"

	"github.com/expense-tracer/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Summary contains the totals of a month and the data for its chart.
type Summary struct {
	Spent     decimal.Decimal `json:"spent" example:"500"`     // Sum of all expenses up to and including today
	Remaining decimal.Decimal `json:"remaining" example:"500"` // Budget minus spent, negative when overspent
	Future    decimal.Decimal `json:"future" example:"200"`    // Sum of all expenses dated after today
	Rows      []SummaryRow    `json:"rows"`                    // Expenses ordered by date, unknown dates last
}

// SummaryRow is one expense in the projection.
type SummaryRow struct {
	ID          uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Description string          `json:"description" example:"Rent"`
	Amount      decimal.Decimal `json:"amount" example:"500"`
	Date        *time.Time      `json:"date" example:"2024-03-01T00:00:00Z"` // nil if the date is unknown
}

// Summarize computes spent and remaining money for the day of today.
//
// Expenses without a date count as spent. today is interpreted in its own
// location.
func Summarize(expenses []Expense, totalMoney decimal.Decimal, today time.Time) Summary {
	day := types.DateOf(today)

	spent := decimal.Zero
	future := decimal.Zero
	rows := make([]SummaryRow, 0, len(expenses))

	for _, e := range expenses {
		row := SummaryRow{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
		}

		if e.Date == nil || e.Date.OnOrBefore(day) {
			spent = spent.Add(e.Amount)
		} else {
			future = future.Add(e.Amount)
		}

		if e.Date != nil {
			if t, ok := e.Date.Time(); ok {
				row.Date = &t
			}
		}

		rows = append(rows, row)
	}

	// Unknown dates go last
	slices.SortStableFunc(rows, func(a, b SummaryRow) int {
		switch {
		case a.Date == nil && b.Date == nil:
			return 0
		case a.Date == nil:
			return 1
		case b.Date == nil:
			return -1
		}
		return a.Date.Compare(*b.Date)
	})

	return Summary{
		Spent:     spent,
		Remaining: totalMoney.Sub(spent),
		Future:    future,
		Rows:      rows,
	}
}
