package v1

import (
	"fmt"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters of a new expense.
type ExpenseEditable struct {
	Description string `json:"description" example:"Rent"` // What the money was spent on

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount spent
	Date   *types.Date     `json:"date" example:"2024-03-01"`                                                                       // Day of the expense in YYYY-MM-DD format. Can be omitted if unknown
}

// ExpenseUpdate contains the parameters of an expense that can be changed.
type ExpenseUpdate struct {
	Description string          `json:"description" example:"Rent"` // What the money was spent on
	Amount      decimal.Decimal `json:"amount" example:"500"`       // Amount spent
}

type ExpenseLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/expenses/d430d7c3-d14c-4712-9336-ee56965a6673"` // The expense itself
	Month string `json:"month" example:"https://example.com/api/v1/months/2024-03"`                              // The month of the expense
}

// Expense is the API representation of an expense.
type Expense struct {
	models.Expense
	Formatted string       `json:"formatted" example:"€500.00"` // The amount formatted for display
	Links     ExpenseLinks `json:"links"`
}

// newExpense returns the API representation of the expense. The amount is
// formatted in the currency of the month.
func newExpense(c *gin.Context, model models.Expense, currency types.Currency) Expense {
	url := c.GetString(string(models.ContextURL))

	return Expense{
		Expense:   model,
		Formatted: currency.Format(model.Amount),
		Links: ExpenseLinks{
			Self:  fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Month: fmt.Sprintf("%s/v1/months/%s", url, model.Month),
		},
	}
}

type ExpenseQueryFilter struct {
	Description string `form:"description"` // Glob pattern the description must match, e.g. "Rent*"
}

type ExpenseListResponse struct {
	Data  []Expense `json:"data"`                                                                  // List of expenses, ordered by date
	Error *string   `json:"error" example:"could not parse the month, did you use YYYY-MM format?"` // The error, if any occurred
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                 // List of the created expenses or their respective error
	Error *string           `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

func (e *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}
