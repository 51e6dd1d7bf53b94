// internal/repository/comment.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/model"
)

type CommentRepositoryIface interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByReview(ctx context.Context, reviewID uuid.UUID) ([]model.Comment, error)
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByReview(ctx context.Context, reviewID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	return comments, nil
}
