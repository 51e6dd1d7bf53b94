// internal/model/translation.go
package model

// Language is a supported UI language, keyed by its short code ("en", "fr").
type Language struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Code string `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	Translations []Translation `gorm:"foreignKey:LanguageID;constraint:OnDelete:CASCADE" json:"-"`
}

// Translation maps a UI key to localized text. A key is unique per language.
type Translation struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	LanguageID uint   `gorm:"not null;uniqueIndex:idx_language_key,priority:1" json:"-"`
	Key        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_language_key,priority:2" json:"key"`
	Value      string `gorm:"type:text;not null" json:"value"`

	Language Language `gorm:"foreignKey:LanguageID" json:"-"`
}
