// internal/repository/category.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
)

type CategoryRepositoryIface interface {
	WithTx(tx *gorm.DB) CategoryRepositoryIface

	Create(ctx context.Context, category *model.Category) error
	GetOrCreateByName(ctx context.Context, name string) (*model.Category, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindRoots(ctx context.Context) ([]model.Category, error)
	SearchByName(ctx context.Context, name string, offset, limit int) ([]model.Category, int64, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	BusinessCounts(ctx context.Context) ([]model.CategoryBusinessCount, error)
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) WithTx(tx *gorm.DB) CategoryRepositoryIface {
	return &CategoryRepository{db: tx}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetOrCreateByName returns the category with the given name, creating it if
// needed. The second return reports whether a row was created.
func (r *CategoryRepository) GetOrCreateByName(ctx context.Context, name string) (*model.Category, bool, error) {
	category, err := r.FindByName(ctx, name)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, false, err
	}

	category = &model.Category{Name: name, Active: true}
	if err := r.Create(ctx, category); err != nil {
		return nil, false, err
	}
	return category, true, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	result := r.db.WithContext(ctx).Preload("Subcategories").First(&category, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", result.Error)
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", result.Error)
	}
	return &category, nil
}

// FindRoots returns top-level categories with their subcategory tree one
// level deep preloaded.
func (r *CategoryRepository) FindRoots(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Preload("Subcategories").
		Order("name").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) SearchByName(ctx context.Context, name string, offset, limit int) ([]model.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("active = ?", true).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}

	var categories []model.Category
	if err := q.Order("name").Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search categories: %w", err)
	}
	return categories, count, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// BusinessCounts returns active categories with their active business count,
// busiest first.
func (r *CategoryRepository) BusinessCounts(ctx context.Context) ([]model.CategoryBusinessCount, error) {
	var counts []model.CategoryBusinessCount
	if err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.id, categories.name, categories.active, COUNT(businesses.id) AS business_count").
		Joins("LEFT JOIN businesses ON businesses.category_id = categories.id AND businesses.active = ?", true).
		Where("categories.active = ?", true).
		Group("categories.id, categories.name, categories.active").
		Order("business_count DESC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count businesses per category: %w", err)
	}
	return counts, nil
}
