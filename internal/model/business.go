// internal/model/business.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessType string

const (
	BusinessPrivate    BusinessType = "private"
	BusinessPublic     BusinessType = "public"
	BusinessParapublic BusinessType = "parapublic"
)

// Business is uniquely identified by its (name, category, country, city)
// tuple. Country is an ISO 3166-1 alpha-2 code. The Active flag is the soft
// delete: inactive businesses are hidden from every public listing.
type Business struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Name        string       `gorm:"type:varchar(50);uniqueIndex:idx_business_identity,priority:1" json:"name"`
	CategoryID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_business_identity,priority:2" json:"category_id"`
	Country     string       `gorm:"type:varchar(100);uniqueIndex:idx_business_identity,priority:3" json:"country"`
	City        string       `gorm:"type:varchar(100);uniqueIndex:idx_business_identity,priority:4" json:"city"`
	Logo        string       `gorm:"type:varchar(255)" json:"logo,omitempty"`
	Phone       string       `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email       string       `gorm:"type:varchar(100)" json:"email,omitempty"`
	Description string       `gorm:"type:varchar(1000)" json:"description,omitempty"`
	Website     string       `gorm:"type:varchar(255)" json:"website,omitempty"`
	BType       BusinessType `gorm:"type:varchar(50)" json:"btype,omitempty"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	IsVerified  bool         `gorm:"column:isverified;not null;default:false" json:"isverified"`
	ShowEval    bool         `gorm:"column:showeval;not null;default:true" json:"showeval"`
	ShowReview  bool         `gorm:"column:showreview;not null;default:true" json:"showreview"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Codes    []Code   `gorm:"foreignKey:BusinessID" json:"-"`
	Reviews  []Review `gorm:"foreignKey:BusinessID" json:"-"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ReviewsInfo carries the review aggregates shown next to a business.
type ReviewsInfo struct {
	TotalReviews    int64   `json:"total_reviews"`
	TotalEvaluation float64 `json:"total_evaluation"`
	HasReviews      bool    `json:"has_reviews"`
}
