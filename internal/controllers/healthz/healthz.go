package healthz

import (
	"net/http"

	"github.com/expense-tracer/backend/internal/httputil"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error" example:"the store is currently unavailable, please try again later"` // The reason the backend is not healthy
}

// Controller reports the health of the store.
type Controller struct {
	store *models.Store
}

func RegisterRoutes(r *gin.RouterGroup, store *models.Store) {
	co := Controller{store: store}

	r.OPTIONS("", Options)
	r.GET("", co.Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	Response
// @Router			/healthz [get]
func (co Controller) Get(c *gin.Context) {
	err := co.store.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
