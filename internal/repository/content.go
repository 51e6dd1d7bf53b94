// internal/repository/content.go
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

// ContentRepository stores the site's display content (banners and slides).
type ContentRepositoryIface interface {
	CreateBanner(ctx context.Context, banner *model.Banner) error
	FindBanners(ctx context.Context) ([]model.Banner, error)
	UpdateBanner(ctx context.Context, banner *model.Banner) error
	DeleteBanner(ctx context.Context, id uuid.UUID) error
	FindBannerByID(ctx context.Context, id uuid.UUID) (*model.Banner, error)

	CreateSlide(ctx context.Context, slide *model.Slide) error
	FindSlides(ctx context.Context) ([]model.Slide, error)
	UpdateSlide(ctx context.Context, slide *model.Slide) error
	DeleteSlide(ctx context.Context, id uuid.UUID) error
	FindSlideByID(ctx context.Context, id uuid.UUID) (*model.Slide, error)
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) CreateBanner(ctx context.Context, banner *model.Banner) error {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

func (r *ContentRepository) FindBanners(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to find banners: %w", err)
	}
	return banners, nil
}

func (r *ContentRepository) FindBannerByID(ctx context.Context, id uuid.UUID) (*model.Banner, error) {
	var banner model.Banner
	result := r.db.WithContext(ctx).First(&banner, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find banner: %w", result.Error)
	}
	return &banner, nil
}

func (r *ContentRepository) UpdateBanner(ctx context.Context, banner *model.Banner) error {
	if err := r.db.WithContext(ctx).Save(banner).Error; err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	return nil
}

func (r *ContentRepository) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Banner{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete banner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) CreateSlide(ctx context.Context, slide *model.Slide) error {
	if err := r.db.WithContext(ctx).Create(slide).Error; err != nil {
		return fmt.Errorf("failed to create slide: %w", err)
	}
	return nil
}

func (r *ContentRepository) FindSlides(ctx context.Context) ([]model.Slide, error) {
	var slides []model.Slide
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&slides).Error; err != nil {
		return nil, fmt.Errorf("failed to find slides: %w", err)
	}
	return slides, nil
}

func (r *ContentRepository) FindSlideByID(ctx context.Context, id uuid.UUID) (*model.Slide, error) {
	var slide model.Slide
	result := r.db.WithContext(ctx).First(&slide, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find slide: %w", result.Error)
	}
	return &slide, nil
}

func (r *ContentRepository) UpdateSlide(ctx context.Context, slide *model.Slide) error {
	if err := r.db.WithContext(ctx).Save(slide).Error; err != nil {
		return fmt.Errorf("failed to update slide: %w", err)
	}
	return nil
}

func (r *ContentRepository) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Slide{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete slide: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
