// internal/model/content.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Banner is a promotional block shown on the public site.
type Banner struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	Description string    `gorm:"type:varchar(1000)" json:"description,omitempty"`
	ImgSrc      string    `gorm:"type:varchar(255)" json:"imgSrc,omitempty"`
	ImgWidth    int       `json:"imgWidth,omitempty"`
	ImgHeight   int       `json:"imgHeight,omitempty"`
	Href        string    `gorm:"type:varchar(255)" json:"href,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Slide is a hero carousel entry.
type Slide struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	Description string    `gorm:"type:varchar(1000)" json:"description,omitempty"`
	BgImg       string    `gorm:"type:varchar(255)" json:"bgImg,omitempty"`
	URL         string    `gorm:"type:varchar(255)" json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Slide) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
