// internal/service/category.go
package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
)

// CategoryService manages the business taxonomy. Reads are public; writes
// are staff only.
type CategoryService struct {
	categories repository.CategoryRepositoryIface
	validate   *validator.Validate
}

func NewCategoryService(categories repository.CategoryRepositoryIface) *CategoryService {
	return &CategoryService{
		categories: categories,
		validate:   validator.New(),
	}
}

type CategoryInput struct {
	Name        string            `json:"name" validate:"required,max=100"`
	Description string            `json:"description" validate:"omitempty,max=1000"`
	Styles      map[string]string `json:"styles"`
	Href        string            `json:"href" validate:"omitempty,max=200"`
	ImgSrc      string            `json:"imgSrc" validate:"omitempty,max=255"`
	ImgWidth    int               `json:"imgWidth" validate:"omitempty,min=0"`
	ImgHeight   int               `json:"imgHeight" validate:"omitempty,min=0"`
	ParentID    *uuid.UUID        `json:"parent"`
}

func (s *CategoryService) Create(ctx context.Context, principal *model.User, input CategoryInput) (*model.Category, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if input.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
		Styles:      input.Styles,
		Href:        input.Href,
		ImgSrc:      input.ImgSrc,
		ImgWidth:    input.ImgWidth,
		ImgHeight:   input.ImgHeight,
		ParentID:    input.ParentID,
		Active:      true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// Roots returns the top-level categories with one level of subcategories.
func (s *CategoryService) Roots(ctx context.Context) ([]model.Category, error) {
	return s.categories.FindRoots(ctx)
}

func (s *CategoryService) Search(ctx context.Context, name string, offset, limit int) ([]model.Category, int64, error) {
	return s.categories.SearchByName(ctx, name, offset, limit)
}

// BusinessCounts returns active categories ordered by how many active
// businesses they hold.
func (s *CategoryService) BusinessCounts(ctx context.Context) ([]model.CategoryBusinessCount, error) {
	return s.categories.BusinessCounts(ctx)
}

func (s *CategoryService) Update(ctx context.Context, principal *model.User, id uuid.UUID, input CategoryInput) (*model.Category, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	category.Styles = input.Styles
	category.Href = input.Href
	category.ImgSrc = input.ImgSrc
	category.ImgWidth = input.ImgWidth
	category.ImgHeight = input.ImgHeight
	category.ParentID = input.ParentID

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category and, through the FK cascade, its subcategories.
func (s *CategoryService) Delete(ctx context.Context, principal *model.User, id uuid.UUID) error {
	if !principal.IsStaff {
		return domain.ErrForbidden
	}
	return s.categories.Delete(ctx, id)
}
