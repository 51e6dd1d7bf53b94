// internal/service/content.go
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

// ContentService manages the public site's banners and slides. Reads are
// public; writes are staff only.
type ContentService struct {
	content  repository.ContentRepositoryIface
	validate *validator.Validate
}

func NewContentService(content repository.ContentRepositoryIface) *ContentService {
	return &ContentService{
		content:  content,
		validate: validator.New(),
	}
}

type BannerInput struct {
	Title       string `json:"title" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ImgSrc      string `json:"imgSrc" validate:"required,max=255"`
	ImgWidth    int    `json:"imgWidth" validate:"omitempty,min=0"`
	ImgHeight   int    `json:"imgHeight" validate:"omitempty,min=0"`
	Href        string `json:"href" validate:"omitempty,max=255"`
}

func (s *ContentService) CreateBanner(ctx context.Context, principal *model.User, input BannerInput) (*model.Banner, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	banner := &model.Banner{
		Title:       input.Title,
		Description: input.Description,
		ImgSrc:      input.ImgSrc,
		ImgWidth:    input.ImgWidth,
		ImgHeight:   input.ImgHeight,
		Href:        input.Href,
	}
	if err := s.content.CreateBanner(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *ContentService) Banners(ctx context.Context) ([]model.Banner, error) {
	return s.content.FindBanners(ctx)
}

func (s *ContentService) UpdateBanner(ctx context.Context, principal *model.User, id uuid.UUID, input BannerInput) (*model.Banner, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	banner, err := s.content.FindBannerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Title = input.Title
	banner.Description = input.Description
	banner.ImgSrc = input.ImgSrc
	banner.ImgWidth = input.ImgWidth
	banner.ImgHeight = input.ImgHeight
	banner.Href = input.Href

	if err := s.content.UpdateBanner(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *ContentService) DeleteBanner(ctx context.Context, principal *model.User, id uuid.UUID) error {
	if !principal.IsStaff {
		return domain.ErrForbidden
	}
	return s.content.DeleteBanner(ctx, id)
}

type SlideInput struct {
	Title       string `json:"title" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	BgImg       string `json:"bgImg" validate:"required,max=255"`
	URL         string `json:"url" validate:"omitempty,max=255"`
}

func (s *ContentService) CreateSlide(ctx context.Context, principal *model.User, input SlideInput) (*model.Slide, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	slide := &model.Slide{
		Title:       input.Title,
		Description: input.Description,
		BgImg:       input.BgImg,
		URL:         input.URL,
	}
	if err := s.content.CreateSlide(ctx, slide); err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *ContentService) Slides(ctx context.Context) ([]model.Slide, error) {
	return s.content.FindSlides(ctx)
}

func (s *ContentService) UpdateSlide(ctx context.Context, principal *model.User, id uuid.UUID, input SlideInput) (*model.Slide, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	slide, err := s.content.FindSlideByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slide.Title = input.Title
	slide.Description = input.Description
	slide.BgImg = input.BgImg
	slide.URL = input.URL

	if err := s.content.UpdateSlide(ctx, slide); err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *ContentService) DeleteSlide(ctx context.Context, principal *model.User, id uuid.UUID) error {
	if !principal.IsStaff {
		return domain.ErrForbidden
	}
	return s.content.DeleteSlide(ctx, id)
}
