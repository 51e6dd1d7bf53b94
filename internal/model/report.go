// internal/model/report.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is an analytics document attached to a business.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	Description string    `gorm:"type:varchar(1000)" json:"description,omitempty"`
	URL         string    `gorm:"type:varchar(1000)" json:"url,omitempty"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
