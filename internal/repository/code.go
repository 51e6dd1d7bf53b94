// internal/repository/code.go
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

type CodeRepositoryIface interface {
	WithTx(tx *gorm.DB) CodeRepositoryIface

	Create(ctx context.Context, code *model.Code) error
	TokenExists(ctx context.Context, token string) (bool, error)
	FindByToken(ctx context.Context, token string) (*model.Code, error)
	FindActiveByToken(ctx context.Context, token string) (*model.Code, error)
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteActiveDuplicates(ctx context.Context, token string, keepID uuid.UUID) (int64, error)
	FindByBusiness(ctx context.Context, businessID uuid.UUID, active bool) ([]model.Code, error)
}

type CodeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) *CodeRepository {
	return &CodeRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CodeRepository) WithTx(tx *gorm.DB) CodeRepositoryIface {
	return &CodeRepository{db: tx}
}

func (r *CodeRepository) Create(ctx context.Context, code *model.Code) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		return fmt.Errorf("failed to create code: %w", err)
	}
	return nil
}

func (r *CodeRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Code{}).
		Where("invitation_code = ?", token).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check token existence: %w", err)
	}
	return count > 0, nil
}

func (r *CodeRepository) FindByToken(ctx context.Context, token string) (*model.Code, error) {
	var code model.Code
	result := r.db.WithContext(ctx).Where("invitation_code = ?", token).First(&code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to find code: %w", result.Error)
	}
	return &code, nil
}

func (r *CodeRepository) FindActiveByToken(ctx context.Context, token string) (*model.Code, error) {
	var code model.Code
	result := r.db.WithContext(ctx).
		Where("invitation_code = ? AND is_active = ?", token, true).
		First(&code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeInvalidOrInactive
		}
		return nil, fmt.Errorf("failed to find active code: %w", result.Error)
	}
	return &code, nil
}

// Deactivate flips the code inactive with a conditional update. It reports
// whether this call actually consumed the code: a concurrent consumer that
// got there first leaves no row for this update to match.
func (r *CodeRepository) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Code{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, fmt.Errorf("failed to deactivate code: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// DeleteActiveDuplicates removes stray active rows carrying the same token
// text, keeping the row that was just consumed. Returns how many rows were
// removed.
func (r *CodeRepository) DeleteActiveDuplicates(ctx context.Context, token string, keepID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("invitation_code = ? AND is_active = ? AND id <> ?", token, true, keepID).
		Delete(&model.Code{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete duplicate codes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *CodeRepository) FindByBusiness(ctx context.Context, businessID uuid.UUID, active bool) ([]model.Code, error) {
	var codes []model.Code
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND is_active = ?", businessID, active).
		Order("created_at").
		Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to find business codes: %w", err)
	}
	return codes, nil
}
