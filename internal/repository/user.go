// internal/repository/user.go
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

type UserRepositoryIface interface {
	WithTx(tx *gorm.DB) UserRepositoryIface

	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetSessionKey(ctx context.Context, id uuid.UUID, key *string) error

	CreateMembership(ctx context.Context, membership *model.UserBusiness) error
	FindMembership(ctx context.Context, userID, businessID uuid.UUID) (*model.UserBusiness, error)
	FindMembershipsByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.UserBusiness, error)
	DeleteMembership(ctx context.Context, userID, businessID uuid.UUID) error
	FindActiveBusinessesByUser(ctx context.Context, userID uuid.UUID) ([]model.Business, error)
	FindColleagues(ctx context.Context, userID uuid.UUID) ([]model.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) UserRepositoryIface {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// SetSessionKey updates only the session back-reference; a nil key clears it.
func (r *UserRepository) SetSessionKey(ctx context.Context, id uuid.UUID, key *string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("current_session_key", key).Error; err != nil {
		return fmt.Errorf("failed to set session key: %w", err)
	}
	return nil
}

func (r *UserRepository) CreateMembership(ctx context.Context, membership *model.UserBusiness) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

func (r *UserRepository) FindMembership(ctx context.Context, userID, businessID uuid.UUID) (*model.UserBusiness, error) {
	var membership model.UserBusiness
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		First(&membership)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", result.Error)
	}
	return &membership, nil
}

func (r *UserRepository) FindMembershipsByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.UserBusiness, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var memberships []model.UserBusiness
	if err := q.Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to find memberships: %w", err)
	}
	return memberships, nil
}

func (r *UserRepository) DeleteMembership(ctx context.Context, userID, businessID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Delete(&model.UserBusiness{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *UserRepository) FindActiveBusinessesByUser(ctx context.Context, userID uuid.UUID) ([]model.Business, error) {
	var businesses []model.Business
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_businesses ON user_businesses.business_id = businesses.id").
		Where("user_businesses.user_id = ? AND businesses.active = ?", userID, true).
		Preload("Category").
		Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("failed to find user businesses: %w", err)
	}
	return businesses, nil
}

// FindColleagues returns all other users linked to any of the user's active
// businesses.
func (r *UserRepository) FindColleagues(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Distinct("users.*").
		Joins("JOIN user_businesses ub ON ub.user_id = users.id").
		Joins("JOIN businesses b ON b.id = ub.business_id").
		Joins("JOIN user_businesses mine ON mine.business_id = b.id").
		Where("mine.user_id = ? AND b.active = ? AND users.id <> ?", userID, true, userID).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find colleagues: %w", err)
	}
	return users, nil
}
