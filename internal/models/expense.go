package models

import (
	"fmt"
	"strings"

	"github.com/expense-tracer/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Expense is a single spending entry in a month.
type Expense struct {
	DefaultModel
	OwnerID     string          `json:"ownerId" gorm:"index;not null;default:''" example:"alice"`            // Identity of the owner, empty in single-tenant mode
	Description string          `json:"description" gorm:"not null" example:"Rent"`                          // What the money was spent on
	Amount      decimal.Decimal `json:"amount" gorm:"type:TEXT;not null" example:"500" minimum:"0.00000001"` // Amount spent
	Date        *types.Date     `json:"date" example:"2024-03-01"`                                           // Day of the expense. May be unknown.
	Month       types.Month     `json:"month" gorm:"index;not null" example:"2024-03"`                       // Month the expense is booked in
}

// TableName keeps the table name of existing databases.
func (Expense) TableName() string {
	return "expenses"
}

// ValidateExpense checks the fields of a new expense.
func ValidateExpense(description string, amount decimal.Decimal, date *types.Date) error {
	err := ValidateEdit(description, amount)
	if err != nil {
		return err
	}

	if date != nil {
		_, err := types.ParseDate(string(*date))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	return nil
}

// ValidateEdit checks the fields that can be changed on an expense.
func ValidateEdit(description string, amount decimal.Decimal) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}

	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// ValidateBudget checks the amount of money for a month.
func ValidateBudget(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrBudgetNegative
	}

	return nil
}

// ValidateCurrency checks that a budget is kept in a supported currency.
func ValidateCurrency(currency types.Currency) error {
	if !currency.Valid() {
		return fmt.Errorf("%w: %w, got '%s'", ErrInvalidInput, types.ErrInvalidCurrency, currency)
	}

	return nil
}
