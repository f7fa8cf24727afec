package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/expense-tracer/backend/internal/httputil"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type SummaryQueryFilter struct {
	Today string `form:"today"` // Day to compute the summary for in YYYY-MM-DD format. Defaults to the current day
}

type SummaryFormatted struct {
	Budget    string `json:"budget" example:"€1,000.00"`  // Budget of the month
	Spent     string `json:"spent" example:"€500.00"`     // Sum of expenses up to and including today
	Remaining string `json:"remaining" example:"€500.00"` // Budget minus spent
	Future    string `json:"future" example:"€200.00"`    // Sum of expenses after today
}

// Summary is the overview of a month with all amounts formatted in the
// currency of the month.
type Summary struct {
	models.Overview
	Formatted SummaryFormatted `json:"formatted"`
	Links     MonthLinks       `json:"links"`
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`                                                                      // Summary of the month
	Error *string  `json:"error" example:"could not parse the date, did you use YYYY-MM-DD format?"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Param			month	path	string	true	"Year and month in YYYY-MM format"
// @Router			/v1/months/{month}/summary [options]
func OptionsMonthSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get summary
// @Description	Returns budget, expenses and their totals for a month. Expenses after the current day are projected as future spending.
// @Tags			Summary
// @Produce		json
// @Success		200			{object}	SummaryResponse
// @Failure		400			{object}	SummaryResponse
// @Failure		500			{object}	SummaryResponse
// @Param			month		path		string	true	"Year and month in YYYY-MM format"
// @Param			today		query		string	false	"Day to compute the summary for in YYYY-MM-DD format"
// @Param			X-Owner-ID	header		string	false	"Identity of the owner. Required in multi-tenant mode"
// @Router			/v1/months/{month}/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	var filter SummaryQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	today, err := co.today(filter.Today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	overview, err := co.store.Overview(c.Request.Context(), session(c), uri.Month, today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	currency := overview.Balance.Currency
	data := Summary{
		Overview: overview,
		Formatted: SummaryFormatted{
			Budget:    currency.Format(overview.Balance.TotalMoney),
			Spent:     currency.Format(overview.Summary.Spent),
			Remaining: currency.Format(overview.Summary.Remaining),
			Future:    currency.Format(overview.Summary.Future),
		},
		Links: newMonthLinks(c, uri.Month),
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &data})
}

// today returns the day to summarize for. An empty value is the
// current day in the location of the controller.
func (co Controller) today(value string) (time.Time, error) {
	if value == "" {
		return co.now().In(co.location), nil
	}

	date, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}

	t, err := time.ParseInLocation(time.DateOnly, string(date), co.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}

	return t, nil
}
