// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/auth"
	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/email"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
)

// UserService handles account creation and account-scoped reads. Signup is
// the big one: it creates the manager account, their business and the
// business's invitation codes in a single transaction.
type UserService struct {
	users           repository.UserRepositoryIface
	businessService *BusinessService
	passwordHasher  *auth.PasswordHasher
	txManager       *repository.TxManager
	emailService    *email.Service
	logger          *slog.Logger
	validate        *validator.Validate
}

func NewUserService(
	users repository.UserRepositoryIface,
	businessService *BusinessService,
	passwordHasher *auth.PasswordHasher,
	txManager *repository.TxManager,
	emailService *email.Service,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:           users,
		businessService: businessService,
		passwordHasher:  passwordHasher,
		txManager:       txManager,
		emailService:    emailService,
		logger:          logger,
		validate:        validator.New(),
	}
}

type SignupInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`

	Business CreateBusinessInput `json:"business" validate:"required"`
}

type SignupOutput struct {
	User     *model.User     `json:"user"`
	Business *model.Business `json:"business"`
	Codes    []model.Code    `json:"codes"`
}

// Signup registers a manager together with their first business.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordsDoNotMatch
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	var out *SignupOutput
	err = s.txManager.Do(ctx, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		user := &model.User{
			Email:        input.Email,
			PasswordHash: hash,
			Role:         model.RoleManager,
			IsActive:     true,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}

		created, err := s.businessService.createInTx(ctx, tx, user.ID, input.Business)
		if err != nil {
			return err
		}

		out = &SignupOutput{
			User:     user,
			Business: created.Business,
			Codes:    created.Codes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcome(out.User.Email, out.Business.Name); err != nil {
			s.logger.WarnContext(ctx, "welcome email not sent",
				slog.String("user_id", out.User.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "user signed up",
		slog.String("user_id", out.User.ID.String()))
	return out, nil
}

type CreateCollaboratorInput struct {
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"required,min=8"`
	BusinessIDs []uuid.UUID `json:"business_ids" validate:"required,min=1"`
}

// CreateCollaborator lets a business member add a collaborator account tied
// to the listed businesses. The caller must be a member of every business
// named, and the account comes with all its memberships or not at all.
func (s *UserService) CreateCollaborator(ctx context.Context, principal *model.User, input CreateCollaboratorInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	for _, businessID := range input.BusinessIDs {
		if err := s.businessService.requireMember(ctx, principal, businessID); err != nil {
			return nil, err
		}
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	var collaborator *model.User
	err = s.txManager.Do(ctx, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		collaborator = &model.User{
			Email:        input.Email,
			PasswordHash: hash,
			Role:         model.RoleCollaborator,
			IsActive:     true,
		}
		if err := users.Create(ctx, collaborator); err != nil {
			return err
		}

		for _, businessID := range input.BusinessIDs {
			if err := users.CreateMembership(ctx, &model.UserBusiness{
				UserID:     collaborator.ID,
				BusinessID: businessID,
				IsActive:   true,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "collaborator created",
		slog.String("user_id", collaborator.ID.String()),
		slog.Int("businesses", len(input.BusinessIDs)))
	return collaborator, nil
}

type AttachBusinessesInput struct {
	BusinessIDs []uuid.UUID `json:"business_ids" validate:"required,min=1"`
}

// AttachBusinesses links an existing user to more businesses. The caller
// must be a member of every business named; the new memberships start
// inactive and only count once a member of that business activates them.
func (s *UserService) AttachBusinesses(ctx context.Context, principal *model.User, userID uuid.UUID, input AttachBusinessesInput) ([]model.UserBusiness, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	for _, businessID := range input.BusinessIDs {
		if err := s.businessService.requireMember(ctx, principal, businessID); err != nil {
			return nil, err
		}
		if _, err := s.users.FindMembership(ctx, userID, businessID); err == nil {
			return nil, domain.ErrDuplicateMember
		} else if !errors.Is(err, domain.ErrMembershipNotFound) {
			return nil, err
		}
	}

	var memberships []model.UserBusiness
	err := s.txManager.Do(ctx, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		memberships = memberships[:0]
		for _, businessID := range input.BusinessIDs {
			membership := &model.UserBusiness{
				UserID:     userID,
				BusinessID: businessID,
				IsActive:   false,
			}
			if err := users.CreateMembership(ctx, membership); err != nil {
				return err
			}
			memberships = append(memberships, *membership)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "businesses attached",
		slog.String("user_id", userID.String()),
		slog.Int("businesses", len(memberships)))
	return memberships, nil
}

// RemoveMembership detaches a user from a business. Only members of that
// business (or staff) may do it.
func (s *UserService) RemoveMembership(ctx context.Context, principal *model.User, userID, businessID uuid.UUID) error {
	if err := s.businessService.requireMember(ctx, principal, businessID); err != nil {
		return err
	}
	return s.users.DeleteMembership(ctx, userID, businessID)
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	verified, err := s.passwordHasher.Verify(input.OldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verifying password: %w", err)
	}
	if !verified {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordHasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Businesses lists the active businesses the user belongs to.
func (s *UserService) Businesses(ctx context.Context, userID uuid.UUID) ([]model.Business, error) {
	return s.users.FindActiveBusinessesByUser(ctx, userID)
}

// Colleagues lists the other users attached to the user's active businesses.
func (s *UserService) Colleagues(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	return s.users.FindColleagues(ctx, userID)
}
