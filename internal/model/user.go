// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleManager      UserRole = "manager"
	RoleCustomer     UserRole = "customer"
	RoleCollaborator UserRole = "collaborator"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash      string    `gorm:"type:varchar(255);not null" json:"-"`
	Role              UserRole  `gorm:"type:varchar(50);not null;default:'customer'" json:"role"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff           bool      `gorm:"not null;default:false" json:"is_staff"`
	CurrentSessionKey *string   `gorm:"type:varchar(64)" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Businesses []Business `gorm:"many2many:user_businesses;" json:"businesses,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// UserBusiness is the membership row between a user and a business. Its
// IsActive flag tracks whether the association has been approved, which is
// independent of the business's own soft-delete flag.
type UserBusiness struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	BusinessID uuid.UUID `gorm:"type:uuid;primaryKey" json:"business_id"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}
