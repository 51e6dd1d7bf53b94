// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is customer feedback, optionally tied to a business. Business-bound
// reviews are gated by a single-use invitation code at creation time; the
// code is consumed, not stored. Contact may be an email address or an
// international phone number.
type Review struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title         string     `gorm:"type:varchar(30)" json:"title,omitempty"`
	Text          string     `gorm:"type:varchar(1000)" json:"text,omitempty"`
	Record        string     `gorm:"type:varchar(255)" json:"record,omitempty"`
	Evaluation    *float64   `json:"evaluation,omitempty"`
	BusinessID    *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	Sentiment     string     `gorm:"type:varchar(100)" json:"sentiment,omitempty"`
	Score         *float64   `json:"score,omitempty"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	AuthorCountry string     `gorm:"type:varchar(100)" json:"authorcountry,omitempty"`
	ExpDate       string     `gorm:"type:varchar(20)" json:"expdate,omitempty"`
	AuthorName    string     `gorm:"type:varchar(100)" json:"authorname,omitempty"`
	Contact       string     `gorm:"type:varchar(100)" json:"contact,omitempty"`
	LanguageCode  string     `gorm:"type:varchar(10);default:'fr-FR'" json:"language_code,omitempty"`
	Active        bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Comments []Comment `gorm:"foreignKey:ReviewID" json:"comments,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Comment is a staff reply attached to a review.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReviewID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"review_id"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Text      string     `gorm:"type:varchar(1000)" json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Review Review `gorm:"foreignKey:ReviewID" json:"-"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
