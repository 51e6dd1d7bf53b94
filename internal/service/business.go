// internal/service/business.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/biter777/countries"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/email"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
)

// BusinessService manages the business lifecycle. Creation is transactional:
// the business row, the owner membership and the full invitation code pool
// all land together or not at all.
type BusinessService struct {
	businesses   repository.BusinessRepositoryIface
	users        repository.UserRepositoryIface
	categories   repository.CategoryRepositoryIface
	codeService  *CodeService
	txManager    *repository.TxManager
	emailService *email.Service
	logger       *slog.Logger
	validate     *validator.Validate
}

func NewBusinessService(
	businesses repository.BusinessRepositoryIface,
	users repository.UserRepositoryIface,
	categories repository.CategoryRepositoryIface,
	codeService *CodeService,
	txManager *repository.TxManager,
	emailService *email.Service,
	logger *slog.Logger,
) *BusinessService {
	return &BusinessService{
		businesses:   businesses,
		users:        users,
		categories:   categories,
		codeService:  codeService,
		txManager:    txManager,
		emailService: emailService,
		logger:       logger,
		validate:     validator.New(),
	}
}

type CreateBusinessInput struct {
	Name         string `json:"name" validate:"required,max=50"`
	CategoryName string `json:"category" validate:"required,max=100"`
	Country      string `json:"country" validate:"required,len=2"`
	City         string `json:"city" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	Email        string `json:"email" validate:"omitempty,email"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
	Website      string `json:"website" validate:"omitempty,url"`
	BType        string `json:"btype" validate:"omitempty,oneof=private public parapublic"`
}

type CreateBusinessOutput struct {
	Business *model.Business `json:"business"`
	Codes    []model.Code    `json:"codes"`
}

// Create registers a business owned by the given user and provisions its
// invitation codes.
func (s *BusinessService) Create(ctx context.Context, ownerID uuid.UUID, input CreateBusinessInput) (*CreateBusinessOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	var out *CreateBusinessOutput
	err := s.txManager.Do(ctx, func(tx *gorm.DB) error {
		var err error
		out, err = s.createInTx(ctx, tx, ownerID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// createInTx does the actual business provisioning inside the caller's
// transaction. Signup reuses it so user and business creation commit as one.
func (s *BusinessService) createInTx(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, input CreateBusinessInput) (*CreateBusinessOutput, error) {
	category, _, err := s.categories.WithTx(tx).GetOrCreateByName(ctx, input.CategoryName)
	if err != nil {
		return nil, err
	}

	businesses := s.businesses.WithTx(tx)
	users := s.users.WithTx(tx)

	exists, err := businesses.ExistsByIdentity(ctx, input.Name, category.ID, input.Country, input.City)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateBusiness
	}

	business := &model.Business{
		Name:        input.Name,
		CategoryID:  category.ID,
		Country:     input.Country,
		City:        input.City,
		Phone:       input.Phone,
		Email:       input.Email,
		Description: input.Description,
		Website:     input.Website,
		BType:       model.BusinessType(input.BType),
		Active:      true,
		ShowEval:    true,
		ShowReview:  true,
	}
	if err := businesses.Create(ctx, business); err != nil {
		return nil, err
	}
	business.Category = *category

	membership := &model.UserBusiness{
		UserID:     ownerID,
		BusinessID: business.ID,
		IsActive:   true,
	}
	if err := users.CreateMembership(ctx, membership); err != nil {
		return nil, err
	}

	codes, err := s.codeService.Provision(ctx, tx, business.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "business created",
		slog.String("business_id", business.ID.String()),
		slog.String("owner_id", ownerID.String()),
		slog.Int("codes", len(codes)))

	return &CreateBusinessOutput{Business: business, Codes: codes}, nil
}

// BusinessDetail is a business enriched with its review aggregates and the
// resolved country name.
type BusinessDetail struct {
	Business    *model.Business    `json:"business"`
	ReviewsInfo *model.ReviewsInfo `json:"reviews_info"`
	CountryName string             `json:"country_name"`
}

func (s *BusinessService) Get(ctx context.Context, id uuid.UUID) (*BusinessDetail, error) {
	business, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, business)
}

// Lookup resolves a business by its full identity tuple.
func (s *BusinessService) Lookup(ctx context.Context, name, categoryName, country, city string) (*BusinessDetail, error) {
	business, err := s.businesses.Lookup(ctx, name, categoryName, country, city)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, business)
}

func (s *BusinessService) detail(ctx context.Context, business *model.Business) (*BusinessDetail, error) {
	info, err := s.businesses.ReviewsInfo(ctx, business.ID)
	if err != nil {
		return nil, err
	}
	info.TotalEvaluation = roundTo(info.TotalEvaluation, 2)

	return &BusinessDetail{
		Business:    business,
		ReviewsInfo: info,
		CountryName: countryName(business.Country),
	}, nil
}

func (s *BusinessService) List(ctx context.Context, filter repository.BusinessFilter) ([]model.Business, int64, error) {
	return s.businesses.List(ctx, filter)
}

// Related returns other reviewed businesses in the same category.
func (s *BusinessService) Related(ctx context.Context, businessID uuid.UUID, limit int) ([]model.Business, error) {
	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return s.businesses.FindRelated(ctx, business.CategoryID, business.ID, limit)
}

type UpdateBusinessInput struct {
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Logo        *string `json:"logo" validate:"omitempty,max=255"`
	ShowEval    *bool   `json:"showeval"`
	ShowReview  *bool   `json:"showreview"`
	Active      *bool   `json:"active"`
}

// Update applies the given fields to a business the principal belongs to.
// Staff may edit any business.
func (s *BusinessService) Update(ctx context.Context, principal *model.User, businessID uuid.UUID, input UpdateBusinessInput) (*model.Business, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := s.requireMember(ctx, principal, businessID); err != nil {
		return nil, err
	}

	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		business.Phone = *input.Phone
	}
	if input.Email != nil {
		business.Email = *input.Email
	}
	if input.Description != nil {
		business.Description = *input.Description
	}
	if input.Website != nil {
		business.Website = *input.Website
	}
	if input.Logo != nil {
		business.Logo = *input.Logo
	}
	if input.ShowEval != nil {
		business.ShowEval = *input.ShowEval
	}
	if input.ShowReview != nil {
		business.ShowReview = *input.ShowReview
	}
	if input.Active != nil {
		business.Active = *input.Active
	}

	if err := s.businesses.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Verify marks a business as verified. Staff only. The notification email is
// best effort.
func (s *BusinessService) Verify(ctx context.Context, principal *model.User, businessID uuid.UUID) (*model.Business, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}

	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	business.IsVerified = true
	if err := s.businesses.Update(ctx, business); err != nil {
		return nil, err
	}

	if s.emailService != nil && business.Email != "" {
		if err := s.emailService.SendBusinessVerified(business.Email, business.Name); err != nil {
			s.logger.WarnContext(ctx, "verification email not sent",
				slog.String("business_id", business.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	return business, nil
}

// Codes lists a business's invitation codes for its members.
func (s *BusinessService) Codes(ctx context.Context, principal *model.User, businessID uuid.UUID, active bool) ([]model.Code, error) {
	if err := s.requireMember(ctx, principal, businessID); err != nil {
		return nil, err
	}
	return s.codeService.CodesForBusiness(ctx, businessID, active)
}

// requireMember ensures the principal holds an active membership on the
// business, or is staff.
func (s *BusinessService) requireMember(ctx context.Context, principal *model.User, businessID uuid.UUID) error {
	if principal.IsStaff {
		return nil
	}

	membership, err := s.users.FindMembership(ctx, principal.ID, businessID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if !membership.IsActive {
		return domain.ErrForbidden
	}
	return nil
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// countryName resolves an ISO 3166-1 alpha-2 code to its English name,
// falling back to the raw code when it is unknown.
func countryName(alpha2 string) string {
	cc := countries.ByName(alpha2)
	if cc == countries.Unknown {
		return alpha2
	}
	return cc.String()
}
