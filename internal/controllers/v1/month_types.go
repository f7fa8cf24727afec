package v1

import (
	"fmt"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MonthEditable is the body to add a month with.
type MonthEditable struct {
	Month    types.Month `json:"month" example:"2024-03"`       // Year and month in YYYY-MM format. A full date in YYYY-MM-DD format is accepted, too
	Currency string      `json:"currency" example:"€" default:"€"` // Currency of the budget. One of "kr", "$", "€" or their ISO codes
}

// BalanceEditable represents all user configurable parameters of a month.
type BalanceEditable struct {
	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	TotalMoney decimal.Decimal `json:"totalMoney" example:"1500" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Money available in the month
	Currency   string          `json:"currency" example:"€"`                                                                           // Currency of the budget. One of "kr", "$", "€" or their ISO codes
}

type MonthLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/months/2024-03"`              // The month itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/months/2024-03/expenses"` // Expenses of the month
	Summary  string `json:"summary" example:"https://example.com/api/v1/months/2024-03/summary"`   // Summary of the month
	Previous string `json:"previous" example:"https://example.com/api/v1/months/2024-02"`          // The month before
	Next     string `json:"next" example:"https://example.com/api/v1/months/2024-04"`              // The month after
}

func newMonthLinks(c *gin.Context, month types.Month) MonthLinks {
	url := c.GetString(string(models.ContextURL))
	self := fmt.Sprintf("%s/v1/months/%s", url, month)

	return MonthLinks{
		Self:     self,
		Expenses: self + "/expenses",
		Summary:  self + "/summary",
		Previous: fmt.Sprintf("%s/v1/months/%s", url, month.AddDate(0, -1)),
		Next:     fmt.Sprintf("%s/v1/months/%s", url, month.AddDate(0, 1)),
	}
}

// Month is a month in the list of months.
type Month struct {
	Month types.Month `json:"month" example:"2024-03"` // Year and month in YYYY-MM format
	Links MonthLinks  `json:"links"`
}

// Balance is the API representation of the budget of a month.
type Balance struct {
	models.Balance
	Formatted string     `json:"formatted" example:"€1,500.00"` // The budget formatted for display
	Links     MonthLinks `json:"links"`
}

func newBalance(c *gin.Context, model models.Balance) Balance {
	return Balance{
		Balance:   model,
		Formatted: model.Currency.Format(model.TotalMoney),
		Links:     newMonthLinks(c, model.Month),
	}
}

type MonthListResponse struct {
	Data  []Month `json:"data"`                                                  // List of months, newest first
	Error *string `json:"error" example:"the store is currently unavailable"` // The error, if any occurred
}

type BalanceResponse struct {
	Data  *Balance `json:"data"`                                                                  // Data for the month
	Error *string  `json:"error" example:"could not parse the month, did you use YYYY-MM format?"` // The error, if any occurred
}

type MonthCreateResponse struct {
	Data  []BalanceResponse `json:"data"`                                                 // List of the added months or their respective error
	Error *string           `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

func (m *MonthCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, BalanceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}
