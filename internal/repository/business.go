// internal/repository/business.go
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

// BusinessFilter narrows business listings. Zero values mean "no filter".
type BusinessFilter struct {
	CategoryName    string
	Country         string
	City            string
	Name            string
	OnlyWithReviews bool
	ShowEvalOnly    bool
	Offset          int
	Limit           int
}

type BusinessRepositoryIface interface {
	WithTx(tx *gorm.DB) BusinessRepositoryIface

	Create(ctx context.Context, business *model.Business) error
	ExistsByIdentity(ctx context.Context, name string, categoryID uuid.UUID, country, city string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Business, error)
	Update(ctx context.Context, business *model.Business) error
	List(ctx context.Context, filter BusinessFilter) ([]model.Business, int64, error)
	Lookup(ctx context.Context, name, categoryName, country, city string) (*model.Business, error)
	FindRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]model.Business, error)
	ReviewsInfo(ctx context.Context, businessID uuid.UUID) (*model.ReviewsInfo, error)
}

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) WithTx(tx *gorm.DB) BusinessRepositoryIface {
	return &BusinessRepository{db: tx}
}

func (r *BusinessRepository) Create(ctx context.Context, business *model.Business) error {
	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *BusinessRepository) ExistsByIdentity(ctx context.Context, name string, categoryID uuid.UUID, country, city string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Business{}).
		Where("name = ? AND category_id = ? AND country = ? AND city = ?", name, categoryID, country, city).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check business identity: %w", err)
	}
	return count > 0, nil
}

// FindByID returns the business only if it has not been soft deleted.
func (r *BusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	var business model.Business
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("active = ?", true).
		First(&business, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to find business: %w", result.Error)
	}
	return &business, nil
}

func (r *BusinessRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Business, error) {
	var businesses []model.Business
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("failed to find businesses: %w", err)
	}
	return businesses, nil
}

func (r *BusinessRepository) Update(ctx context.Context, business *model.Business) error {
	if err := r.db.WithContext(ctx).Save(business).Error; err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	return nil
}

// List returns active businesses matching the filter plus the total count
// before pagination.
func (r *BusinessRepository) List(ctx context.Context, filter BusinessFilter) ([]model.Business, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Business{}).Where("businesses.active = ?", true)

	if filter.CategoryName != "" {
		q = q.Joins("JOIN categories ON categories.id = businesses.category_id").
			Where("categories.name = ?", filter.CategoryName)
	}
	if filter.Country != "" {
		q = q.Where("LOWER(businesses.country) LIKE LOWER(?)", "%"+filter.Country+"%")
	}
	if filter.City != "" {
		q = q.Where("LOWER(businesses.city) LIKE LOWER(?)", "%"+filter.City+"%")
	}
	if filter.Name != "" {
		q = q.Where("LOWER(businesses.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.ShowEvalOnly {
		q = q.Where("businesses.showeval = ?", true)
	}
	if filter.OnlyWithReviews {
		q = q.Where("EXISTS (SELECT 1 FROM reviews WHERE reviews.business_id = businesses.id)")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}

	var businesses []model.Business
	if err := q.Preload("Category").Order("businesses.name").Find(&businesses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, count, nil
}

// Lookup resolves one business by its full identity tuple.
func (r *BusinessRepository) Lookup(ctx context.Context, name, categoryName, country, city string) (*model.Business, error) {
	var business model.Business
	result := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = businesses.category_id").
		Where("businesses.name = ? AND categories.name = ? AND businesses.country = ? AND businesses.city = ? AND businesses.active = ?",
			name, categoryName, country, city, true).
		Preload("Category").
		First(&business)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to look up business: %w", result.Error)
	}
	return &business, nil
}

// FindRelated returns other reviewed businesses in the same category.
func (r *BusinessRepository) FindRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]model.Business, error) {
	var businesses []model.Business
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ? AND active = ?", categoryID, excludeID, true).
		Where("EXISTS (SELECT 1 FROM reviews WHERE reviews.business_id = businesses.id)").
		Preload("Category").
		Limit(limit).
		Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("failed to find related businesses: %w", err)
	}
	return businesses, nil
}

// ReviewsInfo aggregates review count and average evaluation for a business.
func (r *BusinessRepository) ReviewsInfo(ctx context.Context, businessID uuid.UUID) (*model.ReviewsInfo, error) {
	var row struct {
		Total int64
		Avg   *float64
	}
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COUNT(*) AS total, AVG(evaluation) AS avg").
		Where("business_id = ?", businessID).
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	info := &model.ReviewsInfo{
		TotalReviews: row.Total,
		HasReviews:   row.Total > 0,
	}
	if row.Avg != nil {
		info.TotalEvaluation = *row.Avg
	}
	return info, nil
}
