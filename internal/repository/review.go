// internal/repository/review.go
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

// ReviewFilter narrows public review listings by attributes of the reviewed
// business. Zero values mean "no filter".
type ReviewFilter struct {
	BusinessID   *uuid.UUID
	CategoryName string
	Country      string
	City         string
	BusinessName string
	Offset       int
	Limit        int
}

type ReviewRepositoryIface interface {
	WithTx(tx *gorm.DB) ReviewRepositoryIface

	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	FindRecent(ctx context.Context, limit int) ([]model.Review, error)
	FindPublic(ctx context.Context, filter ReviewFilter) ([]model.Review, int64, error)
	FindByBusinessIDs(ctx context.Context, businessIDs []uuid.UUID, offset, limit int) ([]model.Review, int64, error)
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) WithTx(tx *gorm.DB) ReviewRepositoryIface {
	return &ReviewRepository{db: tx}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	result := r.db.WithContext(ctx).First(&review, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", result.Error)
	}
	return &review, nil
}

func (r *ReviewRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	result := r.db.WithContext(ctx).Where("active = ?", true).First(&review, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", result.Error)
	}
	return &review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *model.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// FindRecent returns the newest active reviews for businesses that still
// display them.
func (r *ReviewRepository) FindRecent(ctx context.Context, limit int) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Joins("JOIN businesses ON businesses.id = reviews.business_id").
		Where("reviews.active = ? AND businesses.showreview = ?", true, true).
		Order("reviews.created_at DESC").
		Limit(limit).
		Preload("Business").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find recent reviews: %w", err)
	}
	return reviews, nil
}

// FindPublic returns active reviews of active businesses that still display
// them, filtered by attributes of the business, plus the total count before
// pagination.
func (r *ReviewRepository) FindPublic(ctx context.Context, filter ReviewFilter) ([]model.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Review{}).
		Joins("JOIN businesses ON businesses.id = reviews.business_id").
		Where("reviews.active = ? AND businesses.active = ? AND businesses.showreview = ?", true, true, true)

	if filter.BusinessID != nil {
		q = q.Where("businesses.id = ?", *filter.BusinessID)
	}
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
	if filter.BusinessName != "" {
		q = q.Where("LOWER(businesses.name) LIKE LOWER(?)", "%"+filter.BusinessName+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}

	var reviews []model.Review
	if err := q.Order("reviews.created_at DESC").Preload("Business").Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, count, nil
}

func (r *ReviewRepository) FindByBusinessIDs(ctx context.Context, businessIDs []uuid.UUID, offset, limit int) ([]model.Review, int64, error) {
	if len(businessIDs) == 0 {
		return nil, 0, nil
	}

	q := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("business_id IN ? AND active = ?", businessIDs, true)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}

	var reviews []model.Review
	if err := q.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find reviews: %w", err)
	}
	return reviews, count, nil
}
