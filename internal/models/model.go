package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for balances and expenses.
//
// Rows are deleted for good, there is no soft deletion.
type DefaultModel struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the resource
	Timestamps
}

// Timestamps contains the timestamps that gorm sets automatically.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}

// BeforeCreate generates a UUID for the resource.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID = uuid.New()
	return nil
}
