package models

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable = errors.New("the store is currently unavailable, please try again later")
	ErrResourceNotFound = errors.New("there is no")
	ErrInvalidInput     = errors.New("invalid input")
)

var (
	ErrExpenseNotFound   = fmt.Errorf("%w expense matching your query", ErrResourceNotFound)
	ErrBalanceNotFound   = fmt.Errorf("%w balance for this month, add the month first", ErrResourceNotFound)
	ErrMonthNotUnique    = errors.New("the month already has a budget")
	ErrOwnerRequired     = fmt.Errorf("%w: an owner is required", ErrInvalidInput)
	ErrEmptyDescription  = fmt.Errorf("%w: the description must not be empty", ErrInvalidInput)
	ErrAmountNotPositive = fmt.Errorf("%w: the amount must be greater than zero", ErrInvalidInput)
	ErrBudgetNegative    = fmt.Errorf("%w: the budget must not be negative", ErrInvalidInput)
	ErrMonthRequired     = fmt.Errorf("%w: a month is required", ErrInvalidInput)
)
