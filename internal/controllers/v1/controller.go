package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/expense-tracer/backend/internal/httputil"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Controller serves the v1 API from a Store.
type Controller struct {
	store    *models.Store
	location *time.Location
	now      func() time.Time
}

// NewController returns a Controller for the store.
//
// location is the time zone in which the current day is determined
// for monthly summaries. It defaults to the local time zone.
func NewController(store *models.Store, location *time.Location) Controller {
	if location == nil {
		location = time.Local
	}

	return Controller{
		store:    store,
		location: location,
		now:      time.Now,
	}
}

// RegisterRoutes registers the routes for API v1 with
// the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	months := r.Group("/months", co.SessionMiddleware())
	co.RegisterMonthRoutes(months)

	expenses := r.Group("/expenses", co.SessionMiddleware())
	co.RegisterExpenseRoutes(expenses)
}

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrStoreUnavailable) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Months string `json:"months" example:"https://example.com/api/v1/months"` // URL of Month collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.ContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Months: url + "/v1/months",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
