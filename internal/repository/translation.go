// internal/repository/translation.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
)

type TranslationRepositoryIface interface {
	FindLanguageByCode(ctx context.Context, code string) (*model.Language, error)
	FindTranslations(ctx context.Context, languageID uint) ([]model.Translation, error)
	CreateLanguage(ctx context.Context, language *model.Language) error
	UpsertTranslation(ctx context.Context, translation *model.Translation) error
}

type TranslationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

func (r *TranslationRepository) FindLanguageByCode(ctx context.Context, code string) (*model.Language, error) {
	var language model.Language
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&language)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to find language: %w", result.Error)
	}
	return &language, nil
}

func (r *TranslationRepository) FindTranslations(ctx context.Context, languageID uint) ([]model.Translation, error) {
	var translations []model.Translation
	if err := r.db.WithContext(ctx).
		Where("language_id = ?", languageID).
		Find(&translations).Error; err != nil {
		return nil, fmt.Errorf("failed to find translations: %w", err)
	}
	return translations, nil
}

func (r *TranslationRepository) CreateLanguage(ctx context.Context, language *model.Language) error {
	if err := r.db.WithContext(ctx).Create(language).Error; err != nil {
		return fmt.Errorf("failed to create language: %w", err)
	}
	return nil
}

// UpsertTranslation inserts the key or replaces its value for the language.
func (r *TranslationRepository) UpsertTranslation(ctx context.Context, translation *model.Translation) error {
	var existing model.Translation
	err := r.db.WithContext(ctx).
		Where("language_id = ? AND key = ?", translation.LanguageID, translation.Key).
		First(&existing).Error
	if err == nil {
		existing.Value = translation.Value
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update translation: %w", err)
		}
		*translation = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to find translation: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(translation).Error; err != nil {
		return fmt.Errorf("failed to create translation: %w", err)
	}
	return nil
}
