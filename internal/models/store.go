package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/expense-tracer/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTimeout is used for store calls when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Session identifies the caller of a store operation.
type Session struct {
	OwnerID string
}

// NewSession returns the session for the owner.
func NewSession(owner string) Session {
	return Session{OwnerID: strings.TrimSpace(owner)}
}

// Options configure a Store.
type Options struct {
	// Timeout for every single store call. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MultiTenant rejects sessions without an owner.
	MultiTenant bool
}

// Store persists balances and expenses.
//
// All reads and writes are scoped to the owner of the session. Concurrent
// edits of the same expense are not detected, the last write wins.
type Store struct {
	db   *gorm.DB
	opts Options
}

// NewStore returns a Store using the database connection db.
func NewStore(db *gorm.DB, opts Options) *Store {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Store{db: db, opts: opts}
}

// DB returns the underlying database connection.
func (st *Store) DB() *gorm.DB {
	return st.db
}

// Close closes the database connection.
func (st *Store) Close() error {
	sqlDB, err := st.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// MultiTenant reports whether the store requires an owner for every session.
func (st *Store) MultiTenant() bool {
	return st.opts.MultiTenant
}

// Ping verifies that the database can be reached.
func (st *Store) Ping(ctx context.Context) error {
	sqlDB, err := st.db.DB()
	if err != nil {
		return unavailable(err)
	}

	ctx, cancel := context.WithTimeout(ctx, st.opts.Timeout)
	defer cancel()

	err = sqlDB.PingContext(ctx)
	if err != nil {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrStoreUnavailable
	}

	return nil
}

// begin checks the session and returns the database handle for one call.
// The returned cancel function must always be called.
func (st *Store) begin(ctx context.Context, s Session) (*gorm.DB, context.CancelFunc, error) {
	if st.opts.MultiTenant && s.OwnerID == "" {
		return nil, func() {}, ErrOwnerRequired
	}

	ctx, cancel := context.WithTimeout(ctx, st.opts.Timeout)
	return st.db.WithContext(ctx), cancel, nil
}

// owned restricts a query to the rows of the session owner.
func owned(s Session) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", s.OwnerID)
	}
}

// ListMonths returns all months the owner has added, newest first.
func (st *Store) ListMonths(ctx context.Context, s Session) ([]types.Month, error) {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return nil, err
	}

	var months []types.Month
	err = db.Model(&Balance{}).
		Scopes(owned(s)).
		Distinct("month").
		Order("month DESC").
		Pluck("month", &months).Error
	if err != nil {
		return nil, err
	}

	if months == nil {
		months = []types.Month{}
	}

	return months, nil
}

// AddMonth creates the balance for month with a budget of zero.
//
// If the month already exists, it is left untouched and returned.
func (st *Store) AddMonth(ctx context.Context, s Session, month types.Month, currency types.Currency) (Balance, error) {
	if month.IsZero() {
		return Balance{}, ErrMonthRequired
	}

	if currency == "" {
		currency = types.DefaultCurrency
	}

	err := ValidateCurrency(currency)
	if err != nil {
		return Balance{}, err
	}

	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return Balance{}, err
	}

	balance := emptyBalance(s.OwnerID, month)
	balance.Currency = currency

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "month"}},
		DoNothing: true,
	}).Create(&balance).Error
	if err != nil {
		return Balance{}, err
	}

	var stored Balance
	err = db.Scopes(owned(s)).Where("month = ?", month).First(&stored).Error
	if err != nil {
		return Balance{}, err
	}

	return stored, nil
}

// RemoveMonth deletes the balance of month and all of its expenses.
func (st *Store) RemoveMonth(ctx context.Context, s Session, month types.Month) error {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		expenses := tx.Scopes(owned(s)).Where("month = ?", month).Delete(&Expense{})
		if expenses.Error != nil {
			return expenses.Error
		}

		balances := tx.Scopes(owned(s)).Where("month = ?", month).Delete(&Balance{})
		if balances.Error != nil {
			return balances.Error
		}

		log.Debug().
			Str("month", month.String()).
			Int64("expenses", expenses.RowsAffected).
			Int64("balances", balances.RowsAffected).
			Msg("removed month")

		return nil
	})

	return unavailable(err)
}

// GetBalance returns the balance of month.
//
// A month that has not been added has a budget of zero in the default
// currency. This is not an error.
func (st *Store) GetBalance(ctx context.Context, s Session, month types.Month) (Balance, error) {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return Balance{}, err
	}

	var balances []Balance
	err = db.Scopes(owned(s)).Where("month = ?", month).Limit(1).Find(&balances).Error
	if err != nil {
		return Balance{}, err
	}

	if len(balances) == 0 {
		return emptyBalance(s.OwnerID, month), nil
	}

	return balances[0], nil
}

// UpdateBalance sets the budget and currency of month.
//
// It returns the number of balances that were updated. Updating a month
// that has not been added changes nothing and returns 0.
func (st *Store) UpdateBalance(ctx context.Context, s Session, month types.Month, amount decimal.Decimal, currency types.Currency) (int64, error) {
	err := ValidateBudget(amount)
	if err != nil {
		return 0, err
	}

	if currency == "" {
		currency = types.DefaultCurrency
	}

	err = ValidateCurrency(currency)
	if err != nil {
		return 0, err
	}

	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return 0, err
	}

	tx := db.Model(&Balance{}).
		Scopes(owned(s)).
		Where("month = ?", month).
		Updates(map[string]interface{}{
			"total_money": amount,
			"currency":    currency,
		})
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

// AddExpense stores a new expense.
//
// The fields are stored as given, callers validate them with ValidateExpense.
func (st *Store) AddExpense(ctx context.Context, s Session, description string, amount decimal.Decimal, date *types.Date, month types.Month) (Expense, error) {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return Expense{}, err
	}

	expense := Expense{
		OwnerID:     s.OwnerID,
		Description: description,
		Amount:      amount,
		Date:        date,
		Month:       month,
	}

	err = db.Create(&expense).Error
	if err != nil {
		return Expense{}, err
	}

	return expense, nil
}

// ListExpenses returns all expenses of month, ordered by date.
//
// Expenses without a date come first. Expenses on the same date are
// ordered by the time they were added.
func (st *Store) ListExpenses(ctx context.Context, s Session, month types.Month) ([]Expense, error) {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return nil, err
	}

	date := clause.Column{Name: "date"}
	var expenses []Expense
	err = db.Scopes(owned(s)).
		Where("month = ?", month).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN ? IS NULL THEN 0 ELSE 1 END, ? ASC, ? ASC",
			Vars:               []interface{}{date, date, clause.Column{Name: "created_at"}},
			WithoutParentheses: true,
		}}).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	if expenses == nil {
		expenses = []Expense{}
	}

	return expenses, nil
}

// GetExpense returns the expense with the id.
func (st *Store) GetExpense(ctx context.Context, s Session, id uuid.UUID) (Expense, error) {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return Expense{}, err
	}

	var expense Expense
	err = db.Scopes(owned(s)).Where("id = ?", id).First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		return Expense{}, err
	}

	return expense, nil
}

// DeleteExpense deletes the expense with the id.
//
// ErrExpenseNotFound is returned when there is no such expense.
func (st *Store) DeleteExpense(ctx context.Context, s Session, id uuid.UUID) error {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return err
	}

	tx := db.Scopes(owned(s)).Where("id = ?", id).Delete(&Expense{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// EditExpense sets description and amount of the expense with the id.
// Date and month of the expense are never changed.
//
// ErrExpenseNotFound is returned when there is no such expense.
func (st *Store) EditExpense(ctx context.Context, s Session, id uuid.UUID, description string, amount decimal.Decimal) error {
	db, cancel, err := st.begin(ctx, s)
	defer cancel()
	if err != nil {
		return err
	}

	tx := db.Model(&Expense{}).
		Scopes(owned(s)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"description": description,
			"amount":      amount,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// Overview is everything needed to display one month.
type Overview struct {
	Month    types.Month `json:"month" example:"2024-03"` // The month
	Today    types.Date  `json:"today" example:"2024-03-15"` // The day the summary was computed for
	Balance  Balance     `json:"balance"`                  // Budget of the month
	Expenses []Expense   `json:"expenses"`                 // Expenses of the month, ordered by date
	Summary  Summary     `json:"summary"`                  // Totals and projection
}

// Overview reads balance and expenses of month and summarizes them
// for the day of today.
func (st *Store) Overview(ctx context.Context, s Session, month types.Month, today time.Time) (Overview, error) {
	balance, err := st.GetBalance(ctx, s, month)
	if err != nil {
		return Overview{}, err
	}

	expenses, err := st.ListExpenses(ctx, s, month)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		Month:    month,
		Today:    types.DateOf(today),
		Balance:  balance,
		Expenses: expenses,
		Summary:  Summarize(expenses, balance.TotalMoney, today),
	}, nil
}
