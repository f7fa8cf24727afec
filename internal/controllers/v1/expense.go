package v1

import (
	"net/http"

	"github.com/expense-tracer/backend/internal/httputil"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
//
// Expenses are created and listed for their month, see RegisterMonthRoutes.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", co.OptionsExpenseDetail)
	r.GET("/:id", co.GetExpense)
	r.PATCH("/:id", co.UpdateExpense)
	r.DELETE("/:id", co.DeleteExpense)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Param			month	path	string	true	"Year and month in YYYY-MM format"
// @Router			/v1/months/{month}/expenses [options]
func OptionsMonthExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = co.store.GetExpense(c.Request.Context(), session(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get expenses
// @Description	Returns the expenses of a month, ordered by date. Expenses without a date are listed first.
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpenseListResponse
// @Failure		400			{object}	ExpenseListResponse
// @Failure		500			{object}	ExpenseListResponse
// @Param			month		path		string	true	"Year and month in YYYY-MM format"
// @Param			description	query		string	false	"Filter by description. Supports * as wildcard"
// @Param			X-Owner-ID	header		string	false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months/{month}/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	var filter ExpenseQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	ctx := c.Request.Context()
	balance, err := co.store.GetBalance(ctx, session(c), uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	expenses, err := co.store.ListExpenses(ctx, session(c), uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		if slices.Contains(setFields, "Description") && !glob.Glob(filter.Description, expense.Description) {
			continue
		}

		data = append(data, newExpense(c, expense, balance.Currency))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: data})
}

// @Summary		Create expenses
// @Description	Creates new expenses in a month. The month does not need to be added first.
// @Tags			Expenses
// @Produce		json
// @Success		201			{object}	ExpenseCreateResponse
// @Failure		400			{object}	ExpenseCreateResponse
// @Failure		500			{object}	ExpenseCreateResponse
// @Param			month		path		string				true	"Year and month in YYYY-MM format"
// @Param			expenses	body		[]ExpenseEditable	true	"Expenses"
// @Param			X-Owner-ID	header		string				false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months/{month}/expenses [post]
func (co Controller) CreateExpenses(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &s,
		})
		return
	}

	var editables []ExpenseEditable

	// Bind data and return error if not possible
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	ctx := c.Request.Context()
	balance, err := co.store.GetBalance(ctx, session(c), uri.Month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenseCreateResponse{}

	for _, editable := range editables {
		// An empty date is an unknown date
		if editable.Date != nil && *editable.Date == "" {
			editable.Date = nil
		}

		err = models.ValidateExpense(editable.Description, editable.Amount, editable.Date)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		expense, err := co.store.AddExpense(ctx, session(c), editable.Description, editable.Amount, editable.Date, uri.Month)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newExpense(c, expense, balance.Currency)
		r.Data = append(r.Data, ExpenseResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpenseResponse
// @Failure		400			{object}	ExpenseResponse
// @Failure		404			{object}	ExpenseResponse
// @Failure		500			{object}	ExpenseResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-Owner-ID	header		string	false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	expense, err := co.store.GetExpense(c.Request.Context(), session(c), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	co.respondExpense(c, http.StatusOK, expense)
}

// @Summary		Update expense
// @Description	Updates description and amount of an expense. Only values to be updated need to be specified. Date and month of an expense cannot be changed.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200			{object}	ExpenseResponse
// @Failure		400			{object}	ExpenseResponse
// @Failure		404			{object}	ExpenseResponse
// @Failure		500			{object}	ExpenseResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense		body		ExpenseUpdate	true	"Expense"
// @Param			X-Owner-ID	header		string			false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	ctx := c.Request.Context()
	expense, err := co.store.GetExpense(ctx, session(c), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseUpdate{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var data ExpenseUpdate
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	if slices.Contains(updateFields, "Description") {
		expense.Description = data.Description
	}

	if slices.Contains(updateFields, "Amount") {
		expense.Amount = data.Amount
	}

	err = models.ValidateEdit(expense.Description, expense.Amount)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	err = co.store.EditExpense(ctx, session(c), expense.ID, expense.Description, expense.Amount)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	expense, err = co.store.GetExpense(ctx, session(c), expense.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	co.respondExpense(c, http.StatusOK, expense)
}

// @Summary		Delete expense
// @Description	Deletes an expense
// @Tags			Expenses
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			X-Owner-ID	header		string	false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.store.DeleteExpense(c.Request.Context(), session(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// respondExpense sends the expense with the amount formatted in the
// currency of its month.
func (co Controller) respondExpense(c *gin.Context, code int, expense models.Expense) {
	balance, err := co.store.GetBalance(c.Request.Context(), session(c), expense.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	data := newExpense(c, expense, balance.Currency)
	c.JSON(code, ExpenseResponse{Data: &data})
}
