package v1

import (
	"github.com/expense-tracer/backend/internal/types"
	ez_uuid "github.com/expense-tracer/backend/internal/uuid"
)

type URIMonth struct {
	Month types.Month `uri:"month" example:"2024-03"` // Year and month in YYYY-MM format
}

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
