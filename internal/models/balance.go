package models

import (
	"github.com/expense-tracer/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Balance is the budget of one owner for one month.
type Balance struct {
	DefaultModel
	OwnerID    string          `json:"ownerId" gorm:"uniqueIndex:idx_balance_owner_month;not null;default:''" example:"alice"` // Identity of the owner, empty in single-tenant mode
	Month      types.Month     `json:"month" gorm:"uniqueIndex:idx_balance_owner_month;not null" example:"2024-03"`            // Month the budget is for
	TotalMoney decimal.Decimal `json:"totalMoney" gorm:"type:TEXT;not null;default:'0'" example:"1500" minimum:"0"`            // Money available in the month
	Currency   types.Currency  `json:"currency" gorm:"not null;default:'€'" example:"€"`                                       // Currency symbol of the budget
}

// TableName keeps the table name of existing databases.
func (Balance) TableName() string {
	return "balance"
}

// emptyBalance is the state of a month that has never been added.
func emptyBalance(owner string, month types.Month) Balance {
	return Balance{
		OwnerID:    owner,
		Month:      month,
		TotalMoney: decimal.Zero,
		Currency:   types.DefaultCurrency,
	}
}
