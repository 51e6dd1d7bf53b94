// internal/service/translation.go
package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
)

// TranslationService serves the UI translation dictionaries.
type TranslationService struct {
	translations repository.TranslationRepositoryIface
	validate     *validator.Validate
}

func NewTranslationService(translations repository.TranslationRepositoryIface) *TranslationService {
	return &TranslationService{
		translations: translations,
		validate:     validator.New(),
	}
}

// Dictionary returns the key/value map for a language code.
func (s *TranslationService) Dictionary(ctx context.Context, languageCode string) (map[string]string, error) {
	language, err := s.translations.FindLanguageByCode(ctx, languageCode)
	if err != nil {
		return nil, err
	}

	rows, err := s.translations.FindTranslations(ctx, language.ID)
	if err != nil {
		return nil, err
	}

	dict := make(map[string]string, len(rows))
	for _, row := range rows {
		dict[row.Key] = row.Value
	}
	return dict, nil
}

type UpsertTranslationInput struct {
	LanguageCode string `json:"language" validate:"required,max=10"`
	Key          string `json:"key" validate:"required,max=255"`
	Value        string `json:"value" validate:"required"`
}

// Upsert sets one translation key. Staff only.
func (s *TranslationService) Upsert(ctx context.Context, principal *model.User, input UpsertTranslationInput) (*model.Translation, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	language, err := s.translations.FindLanguageByCode(ctx, input.LanguageCode)
	if err != nil {
		return nil, err
	}

	translation := &model.Translation{
		LanguageID: language.ID,
		Key:        input.Key,
		Value:      input.Value,
	}
	if err := s.translations.UpsertTranslation(ctx, translation); err != nil {
		return nil, err
	}
	return translation, nil
}
