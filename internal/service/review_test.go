package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type reviewFixture struct {
	db        *gorm.DB
	users     *repository.UserRepository
	codeSvc   *service.CodeService
	reviewSvc *service.ReviewService
	business  *model.Business
	codes     []model.Code
	owner     *model.User
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	ctx := context.Background()

	db := newTestDB(t)
	logger := testLogger()
	users := repository.NewUserRepository(db)
	txManager := repository.NewTxManager(db)
	codeSvc := service.NewCodeService(repository.NewCodeRepository(db), logger)

	reviewSvc := service.NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewCommentRepository(db),
		repository.NewReportRepository(db),
		repository.NewBusinessRepository(db),
		users,
		codeSvc,
		txManager,
		logger,
	)

	business := seedBusiness(t, db)
	codes, err := codeSvc.Provision(ctx, nil, business.ID)
	require.NoError(t, err)

	owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.CreateMembership(ctx, &model.UserBusiness{
		UserID:     owner.ID,
		BusinessID: business.ID,
		IsActive:   true,
	}))

	return &reviewFixture{
		db:        db,
		users:     users,
		codeSvc:   codeSvc,
		reviewSvc: reviewSvc,
		business:  business,
		codes:     codes,
		owner:     owner,
	}
}

func TestReviewCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("burns the invitation code and binds the business", func(t *testing.T) {
		f := newReviewFixture(t)
		token := f.codes[0].InvitationCode

		eval := 4.5
		review, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{
			InvitationCode: token,
			Title:          "Excellent",
			Text:           "Service rapide et soigné.",
			Evaluation:     &eval,
			Contact:        "client@example.com",
		})
		require.NoError(t, err)
		require.NotNil(t, review.BusinessID)
		assert.Equal(t, f.business.ID, *review.BusinessID)
		assert.True(t, review.Active)

		status, err := f.codeSvc.CheckStatus(ctx, token)
		require.NoError(t, err)
		assert.False(t, status.IsActive)
	})

	t.Run("refuses a burnt code", func(t *testing.T) {
		f := newReviewFixture(t)
		token := f.codes[0].InvitationCode

		_, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{InvitationCode: token, Text: "first"})
		require.NoError(t, err)

		_, err = f.reviewSvc.Create(ctx, service.CreateReviewInput{InvitationCode: token, Text: "second"})
		assert.ErrorIs(t, err, domain.ErrCodeInvalidOrInactive)

		var count int64
		require.NoError(t, f.db.Model(&model.Review{}).Count(&count).Error)
		assert.EqualValues(t, 1, count, "the refused submission stores nothing")
	})

	t.Run("refuses an unknown code", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{InvitationCode: "ZZZZZ", Text: "hello"})
		assert.ErrorIs(t, err, domain.ErrCodeInvalidOrInactive)
	})

	t.Run("accepts free feedback without a code", func(t *testing.T) {
		f := newReviewFixture(t)

		review, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{Text: "Suggestion générale"})
		require.NoError(t, err)
		assert.Nil(t, review.BusinessID)
	})

	t.Run("validates the contact field", func(t *testing.T) {
		f := newReviewFixture(t)

		for _, contact := range []string{"client@example.com", "+237699112233", "0033612345678"} {
			_, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{Text: "ok", Contact: contact})
			assert.NoError(t, err, "contact %q should be accepted", contact)
		}

		for _, contact := range []string{"not-a-contact", "+33 6 12 34", "123", "@example.com"} {
			_, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{Text: "ok", Contact: contact})
			assert.ErrorIs(t, err, domain.ErrInvalidContact, "contact %q should be refused", contact)
		}
	})
}

func TestReviewModeration(t *testing.T) {
	ctx := context.Background()

	t.Run("members soft delete reviews of their business", func(t *testing.T) {
		f := newReviewFixture(t)

		review, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{
			InvitationCode: f.codes[0].InvitationCode,
			Text:           "à modérer",
		})
		require.NoError(t, err)

		stranger := &model.User{Email: "paul@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, stranger))

		err = f.reviewSvc.Deactivate(ctx, stranger, review.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		require.NoError(t, f.reviewSvc.Deactivate(ctx, f.owner, review.ID))

		_, err = f.reviewSvc.Get(ctx, review.ID)
		assert.ErrorIs(t, err, domain.ErrReviewNotFound, "soft deleted reviews disappear from reads")

		var stored model.Review
		require.NoError(t, f.db.First(&stored, "id = ?", review.ID).Error)
		assert.False(t, stored.Active, "the row itself survives")
	})

	t.Run("comments require membership", func(t *testing.T) {
		f := newReviewFixture(t)

		review, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{
			InvitationCode: f.codes[0].InvitationCode,
			Text:           "avec réponse",
		})
		require.NoError(t, err)

		stranger := &model.User{Email: "paul@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, stranger))

		_, err = f.reviewSvc.AddComment(ctx, stranger, review.ID, service.AddCommentInput{Text: "merci"})
		assert.ErrorIs(t, err, domain.ErrForbidden)

		comment, err := f.reviewSvc.AddComment(ctx, f.owner, review.ID, service.AddCommentInput{Text: "merci"})
		require.NoError(t, err)
		require.NotNil(t, comment.UserID)
		assert.Equal(t, f.owner.ID, *comment.UserID)

		comments, err := f.reviewSvc.Comments(ctx, review.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("reports are staff only", func(t *testing.T) {
		f := newReviewFixture(t)

		input := service.CreateReportInput{
			Title:      "Rapport mensuel",
			URL:        "https://reports.example.com/r/1",
			BusinessID: f.business.ID,
		}

		_, err := f.reviewSvc.CreateReport(ctx, f.owner, input)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		staff := &model.User{Email: "staff@example.com", PasswordHash: "x", Role: model.RoleCustomer, IsActive: true, IsStaff: true}
		require.NoError(t, f.users.Create(ctx, staff))

		report, err := f.reviewSvc.CreateReport(ctx, staff, input)
		require.NoError(t, err)
		assert.Equal(t, f.business.ID, report.BusinessID)

		reports, err := f.reviewSvc.ReportsForUser(ctx, f.owner.ID)
		require.NoError(t, err)
		assert.Len(t, reports, 1)
	})
}

func TestReviewListing(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{
			InvitationCode: f.codes[i].InvitationCode,
			Text:           "listing",
		})
		require.NoError(t, err)
	}

	recent, err := f.reviewSvc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	mine, total, err := f.reviewSvc.ForUser(ctx, f.owner.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, mine, 3)
}

func TestReviewPublicListing(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	for i := 0; i < 2; i++ {
		_, err := f.reviewSvc.Create(ctx, service.CreateReviewInput{
			InvitationCode: f.codes[i].InvitationCode,
			Text:           "visible",
		})
		require.NoError(t, err)
	}

	// A business that hides its reviews keeps them out of the listing.
	hidden := &model.Business{
		Name:       "Discret",
		CategoryID: f.business.CategoryID,
		Country:    "CM",
		City:       "Yaoundé",
		Active:     true,
		ShowEval:   true,
		ShowReview: true,
	}
	require.NoError(t, f.db.Create(hidden).Error)
	require.NoError(t, f.db.Model(hidden).Update("showreview", false).Error)
	hiddenID := hidden.ID
	require.NoError(t, f.db.Create(&model.Review{BusinessID: &hiddenID, Text: "invisible", Active: true}).Error)

	all, total, err := f.reviewSvc.List(ctx, repository.ReviewFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	byBusiness, total, err := f.reviewSvc.List(ctx, repository.ReviewFilter{BusinessID: &f.business.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, byBusiness, 2)

	byCity, total, err := f.reviewSvc.List(ctx, repository.ReviewFilter{City: "dou"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, byCity, 2)

	_, total, err = f.reviewSvc.List(ctx, repository.ReviewFilter{City: "Yaoundé"})
	require.NoError(t, err)
	assert.Zero(t, total, "the hidden business contributes nothing")

	byCategory, total, err := f.reviewSvc.List(ctx, repository.ReviewFilter{CategoryName: "Restaurant"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, byCategory, 2)

	page, total, err := f.reviewSvc.List(ctx, repository.ReviewFilter{BusinessName: "marie", Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "the count ignores pagination")
	assert.Len(t, page, 1)
}
