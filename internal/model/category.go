// internal/model/category.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Styles holds the free-form CSS style dictionary attached to a category.
type Styles map[string]string

// Scan implements the sql.Scanner interface
func (s *Styles) Scan(value interface{}) error {
	if value == nil {
		*s = Styles{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, s)
	}

	return json.Unmarshal(raw, s)
}

// Value implements the driver.Valuer interface
func (s Styles) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Category is a node in the business taxonomy. A nil ParentID marks a root
// category; subcategories hang off their parent and cascade on delete.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string     `gorm:"type:varchar(1000)" json:"description,omitempty"`
	Styles      Styles     `gorm:"type:text" json:"styles,omitempty"`
	Href        string     `gorm:"type:varchar(200)" json:"href,omitempty"`
	ImgSrc      string     `gorm:"type:varchar(255)" json:"imgSrc,omitempty"`
	ImgWidth    int        `json:"imgWidth,omitempty"`
	ImgHeight   int        `json:"imgHeight,omitempty"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Subcategories []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"subcategories,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CategoryBusinessCount pairs a category with its active business count.
type CategoryBusinessCount struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Active        bool      `json:"active"`
	BusinessCount int64     `json:"business_count"`
}
