package v1

import (
	"net/http"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// OwnerHeader is the request header carrying the identity of the owner.
// It is set by the authenticating proxy in front of the API.
const OwnerHeader = "X-Owner-ID"

const contextSession = "expense-tracer-session"

// SessionMiddleware creates the session for the request from the owner header.
//
// In multi-tenant mode, requests without an owner are rejected.
// Otherwise, the header is ignored and all requests share one session.
func (co Controller) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := models.Session{}
		if co.store.MultiTenant() {
			s = models.NewSession(c.GetHeader(OwnerHeader))
		}

		if co.store.MultiTenant() && s.OwnerID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, httpError{
				Error: models.ErrOwnerRequired.Error(),
			})
			return
		}

		c.Set(contextSession, s)
		c.Next()
	}
}

// session returns the session for the request.
func session(c *gin.Context) models.Session {
	s, _ := c.Get(contextSession)
	session, _ := s.(models.Session)
	return session
}
