// internal/service/review.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
)

// phonePattern accepts international numbers with an optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// ReviewService handles review submission and moderation. A review targeting
// a business must burn a single-use invitation code; both the code and the
// review commit in one transaction.
type ReviewService struct {
	reviews     repository.ReviewRepositoryIface
	comments    repository.CommentRepositoryIface
	reports     repository.ReportRepositoryIface
	businesses  repository.BusinessRepositoryIface
	users       repository.UserRepositoryIface
	codeService *CodeService
	txManager   *repository.TxManager
	logger      *slog.Logger
	validate    *validator.Validate
}

func NewReviewService(
	reviews repository.ReviewRepositoryIface,
	comments repository.CommentRepositoryIface,
	reports repository.ReportRepositoryIface,
	businesses repository.BusinessRepositoryIface,
	users repository.UserRepositoryIface,
	codeService *CodeService,
	txManager *repository.TxManager,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		comments:    comments,
		reports:     reports,
		businesses:  businesses,
		users:       users,
		codeService: codeService,
		txManager:   txManager,
		logger:      logger,
		validate:    validator.New(),
	}
}

type CreateReviewInput struct {
	InvitationCode string `json:"invitation_code"`

	Title         string   `json:"title" validate:"omitempty,max=30"`
	Text          string   `json:"text" validate:"omitempty,max=1000"`
	Evaluation    *float64 `json:"evaluation" validate:"omitempty,min=0,max=5"`
	AuthorName    string   `json:"authorname" validate:"omitempty,max=100"`
	AuthorCountry string   `json:"authorcountry" validate:"omitempty,max=100"`
	Contact       string   `json:"contact" validate:"omitempty,max=100"`
	Record        string   `json:"record" validate:"omitempty,max=255"`
	Sentiment     string   `json:"sentiment" validate:"omitempty,max=100"`
	Score         *float64 `json:"score"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ExpDate       string   `json:"expdate" validate:"omitempty,max=20"`
	LanguageCode  string   `json:"language_code" validate:"omitempty,max=10"`
}

// validContact accepts an email address or an international phone number.
func validContact(contact string) bool {
	if _, err := mail.ParseAddress(contact); err == nil {
		return true
	}
	return phonePattern.MatchString(contact)
}

// Create submits a review. A non-empty invitation code binds the review to
// the code's business and consumes the code atomically with the insert; an
// empty code produces free-floating feedback with no business attached.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*model.Review, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if input.Contact != "" && !validContact(input.Contact) {
		return nil, domain.ErrInvalidContact
	}

	review := &model.Review{
		Title:         input.Title,
		Text:          input.Text,
		Evaluation:    input.Evaluation,
		AuthorName:    input.AuthorName,
		AuthorCountry: input.AuthorCountry,
		Contact:       input.Contact,
		Record:        input.Record,
		Sentiment:     input.Sentiment,
		Score:         input.Score,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		ExpDate:       input.ExpDate,
		LanguageCode:  input.LanguageCode,
		Active:        true,
	}

	if input.InvitationCode == "" {
		if err := s.reviews.Create(ctx, review); err != nil {
			return nil, err
		}
		return review, nil
	}

	err := s.txManager.Do(ctx, func(tx *gorm.DB) error {
		code, err := s.codeService.Consume(ctx, tx, input.InvitationCode)
		if err != nil {
			return err
		}

		businessID := code.BusinessID
		review.BusinessID = &businessID
		return s.reviews.WithTx(tx).Create(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID.String()),
		slog.String("business_id", review.BusinessID.String()))
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return s.reviews.FindActiveByID(ctx, id)
}

// Recent returns the newest reviews for businesses that display them.
func (s *ReviewService) Recent(ctx context.Context, limit int) ([]model.Review, error) {
	return s.reviews.FindRecent(ctx, limit)
}

// List returns the public reviews matching the filter plus the total count
// before pagination. Only active reviews of active businesses that display
// reviews are visible.
func (s *ReviewService) List(ctx context.Context, filter repository.ReviewFilter) ([]model.Review, int64, error) {
	return s.reviews.FindPublic(ctx, filter)
}

// ForUser returns reviews for all of the user's active businesses.
func (s *ReviewService) ForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.Review, int64, error) {
	businesses, err := s.users.FindActiveBusinessesByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(businesses))
	for i, b := range businesses {
		ids[i] = b.ID
	}
	return s.reviews.FindByBusinessIDs(ctx, ids, offset, limit)
}

// Deactivate soft deletes a review. The review's business members and staff
// may do it.
func (s *ReviewService) Deactivate(ctx context.Context, principal *model.User, reviewID uuid.UUID) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.requireModerator(ctx, principal, review); err != nil {
		return err
	}

	review.Active = false
	if err := s.reviews.Update(ctx, review); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "review deactivated",
		slog.String("review_id", review.ID.String()),
		slog.String("moderator_id", principal.ID.String()))
	return nil
}

type AddCommentInput struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// AddComment attaches a staff reply to a review. Business members may only
// comment on reviews of their own businesses.
func (s *ReviewService) AddComment(ctx context.Context, principal *model.User, reviewID uuid.UUID, input AddCommentInput) (*model.Comment, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	review, err := s.reviews.FindActiveByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if err := s.requireModerator(ctx, principal, review); err != nil {
		return nil, err
	}

	userID := principal.ID
	comment := &model.Comment{
		ReviewID: review.ID,
		UserID:   &userID,
		Text:     input.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ReviewService) Comments(ctx context.Context, reviewID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.reviews.FindActiveByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return s.comments.FindByReview(ctx, reviewID)
}

type CreateReportInput struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description" validate:"omitempty,max=1000"`
	URL         string    `json:"url" validate:"required,url"`
	BusinessID  uuid.UUID `json:"business_id" validate:"required"`
}

// CreateReport attaches an analytics document to a business. Staff only.
func (s *ReviewService) CreateReport(ctx context.Context, principal *model.User, input CreateReportInput) (*model.Report, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.businesses.FindByID(ctx, input.BusinessID); err != nil {
		return nil, err
	}

	report := &model.Report{
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		BusinessID:  input.BusinessID,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ReportsForUser returns the analytics documents for the user's active
// businesses.
func (s *ReviewService) ReportsForUser(ctx context.Context, userID uuid.UUID) ([]model.Report, error) {
	businesses, err := s.users.FindActiveBusinessesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(businesses))
	for i, b := range businesses {
		ids[i] = b.ID
	}
	return s.reports.FindByBusinessIDs(ctx, ids)
}

// requireModerator allows staff everywhere and business members on reviews
// of their own businesses. Reviews without a business are staff-only.
func (s *ReviewService) requireModerator(ctx context.Context, principal *model.User, review *model.Review) error {
	if principal.IsStaff {
		return nil
	}
	if review.BusinessID == nil {
		return domain.ErrForbidden
	}

	membership, err := s.users.FindMembership(ctx, principal.ID, *review.BusinessID)
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
