package v1

import (
	"fmt"
	"net/http"

	"github.com/expense-tracer/backend/internal/httputil"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMonthList)
		r.GET("", co.GetMonths)
		r.POST("", co.CreateMonths)
	}

	// Month
	{
		r.OPTIONS("/:month", OptionsMonthDetail)
		r.GET("/:month", co.GetMonth)
		r.PATCH("/:month", co.UpdateMonth)
		r.DELETE("/:month", co.DeleteMonth)
	}

	// Expenses and summary of the month
	{
		r.OPTIONS("/:month/expenses", OptionsMonthExpenses)
		r.GET("/:month/expenses", co.GetExpenses)
		r.POST("/:month/expenses", co.CreateExpenses)
		r.OPTIONS("/:month/summary", OptionsMonthSummary)
		r.GET("/:month/summary", co.GetSummary)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonthList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Failure		400		{object}	httpError
// @Param			month	path		string	true	"Year and month in YYYY-MM format"
// @Router			/v1/months/{month} [options]
func OptionsMonthDetail(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get months
// @Description	Returns all months that have been added, newest first
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthListResponse
// @Failure		400	{object}	MonthListResponse
// @Failure		500	{object}	MonthListResponse
// @Param			X-Owner-ID	header	string	false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months [get]
func (co Controller) GetMonths(c *gin.Context) {
	months, err := co.store.ListMonths(c.Request.Context(), session(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Month, 0, len(months))
	for _, month := range months {
		data = append(data, Month{
			Month: month,
			Links: newMonthLinks(c, month),
		})
	}

	c.JSON(http.StatusOK, MonthListResponse{Data: data})
}

// @Summary		Add months
// @Description	Adds months with a budget of zero. Months that already exist are returned unchanged.
// @Tags			Months
// @Produce		json
// @Success		201		{object}	MonthCreateResponse
// @Failure		400		{object}	MonthCreateResponse
// @Failure		500		{object}	MonthCreateResponse
// @Param			months		body	[]MonthEditable	true	"Months"
// @Param			X-Owner-ID	header	string			false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months [post]
func (co Controller) CreateMonths(c *gin.Context) {
	var editables []MonthEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MonthCreateResponse{}

	for _, editable := range editables {
		if editable.Month.IsZero() {
			status = r.appendError(models.ErrMonthRequired, status)
			continue
		}

		currency, err := parseCurrency(editable.Currency)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		balance, err := co.store.AddMonth(c.Request.Context(), session(c), editable.Month, currency)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBalance(c, balance)
		r.Data = append(r.Data, BalanceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get month
// @Description	Returns the budget of a month. Months that have not been added have a budget of zero.
// @Tags			Months
// @Produce		json
// @Success		200			{object}	BalanceResponse
// @Failure		400			{object}	BalanceResponse
// @Failure		500			{object}	BalanceResponse
// @Param			month		path		string	true	"Year and month in YYYY-MM format"
// @Param			X-Owner-ID	header		string	false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months/{month} [get]
func (co Controller) GetMonth(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	balance, err := co.store.GetBalance(c.Request.Context(), session(c), uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	data := newBalance(c, balance)
	c.JSON(http.StatusOK, BalanceResponse{Data: &data})
}

// @Summary		Update month
// @Description	Updates the budget of a month. Only values to be updated need to be specified.
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		200			{object}	BalanceResponse
// @Failure		400			{object}	BalanceResponse
// @Failure		404			{object}	BalanceResponse
// @Failure		500			{object}	BalanceResponse
// @Param			month		path		string			true	"Year and month in YYYY-MM format"
// @Param			balance		body		BalanceEditable	true	"Budget"
// @Param			X-Owner-ID	header		string			false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months/{month} [patch]
func (co Controller) UpdateMonth(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BalanceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	var data BalanceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	ctx := c.Request.Context()
	current, err := co.store.GetBalance(ctx, session(c), uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	amount := current.TotalMoney
	if slices.Contains(updateFields, "TotalMoney") {
		amount = data.TotalMoney
	}

	currency := current.Currency
	if slices.Contains(updateFields, "Currency") {
		currency, err = parseCurrency(data.Currency)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BalanceResponse{
				Error: &s,
			})
			return
		}
	}

	rows, err := co.store.UpdateBalance(ctx, session(c), uri.Month, amount, currency)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	if rows == 0 {
		s := models.ErrBalanceNotFound.Error()
		c.JSON(status(models.ErrBalanceNotFound), BalanceResponse{
			Error: &s,
		})
		return
	}

	balance, err := co.store.GetBalance(ctx, session(c), uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	r := newBalance(c, balance)
	c.JSON(http.StatusOK, BalanceResponse{Data: &r})
}

// @Summary		Delete month
// @Description	Deletes the budget of a month and all of its expenses
// @Tags			Months
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			month		path		string	true	"Year and month in YYYY-MM format"
// @Param			X-Owner-ID	header		string	false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months/{month} [delete]
func (co Controller) DeleteMonth(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.store.RemoveMonth(c.Request.Context(), session(c), uri.Month)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// parseCurrency parses a currency from a request body.
func parseCurrency(s string) (types.Currency, error) {
	currency, err := types.ParseCurrency(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}

	return currency, nil
}
