// internal/repository/report.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/model"
)

type ReportRepositoryIface interface {
	Create(ctx context.Context, report *model.Report) error
	FindByBusinessIDs(ctx context.Context, businessIDs []uuid.UUID) ([]model.Report, error)
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *ReportRepository) FindByBusinessIDs(ctx context.Context, businessIDs []uuid.UUID) ([]model.Report, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}

	var reports []model.Report
	if err := r.db.WithContext(ctx).
		Where("business_id IN ?", businessIDs).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}
	return reports, nil
}
