// internal/model/code.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodePoolSize is the number of invitation codes issued to every business at
// creation time.
const CodePoolSize = 32

// Code is a single-use invitation token gating review submission. The token
// is unique across all businesses, not just its owner. Once consumed a code
// is never reactivated.
type Code struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvitationCode string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"invitation_code"`
	BusinessID     uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}

func (c *Code) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
