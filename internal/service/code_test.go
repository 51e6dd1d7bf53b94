package service_test

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/mocks"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/service"
)

var tokenFormat = regexp.MustCompile(`^[A-Z0-9]{5}$`)

func seedBusiness(t *testing.T, db *gorm.DB) *model.Business {
	t.Helper()

	category := &model.Category{Name: "Restaurant", Active: true}
	require.NoError(t, db.Create(category).Error)

	business := &model.Business{
		Name:       "Chez Marie",
		CategoryID: category.ID,
		Country:    "CM",
		City:       "Douala",
		Active:     true,
		ShowEval:   true,
		ShowReview: true,
	}
	require.NoError(t, db.Create(business).Error)
	return business
}

func TestCodeProvision(t *testing.T) {
	db := newTestDB(t)
	business := seedBusiness(t, db)
	svc := service.NewCodeService(repository.NewCodeRepository(db), testLogger())

	codes, err := svc.Provision(context.Background(), nil, business.ID)
	require.NoError(t, err)
	require.Len(t, codes, model.CodePoolSize)

	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		assert.True(t, code.IsActive)
		assert.Equal(t, business.ID, code.BusinessID)
		assert.Regexp(t, tokenFormat, code.InvitationCode)

		_, dup := seen[code.InvitationCode]
		assert.False(t, dup, "token %s issued twice", code.InvitationCode)
		seen[code.InvitationCode] = struct{}{}
	}

	var count int64
	require.NoError(t, db.Model(&model.Code{}).Where("business_id = ?", business.ID).Count(&count).Error)
	assert.EqualValues(t, model.CodePoolSize, count)
}

func TestCodeProvisionUniqueAcrossBusinesses(t *testing.T) {
	db := newTestDB(t)
	first := seedBusiness(t, db)
	svc := service.NewCodeService(repository.NewCodeRepository(db), testLogger())

	second := &model.Business{
		Name:       "Chez Paul",
		CategoryID: first.CategoryID,
		Country:    "CM",
		City:       "Yaoundé",
		Active:     true,
	}
	require.NoError(t, db.Create(second).Error)

	_, err := svc.Provision(context.Background(), nil, first.ID)
	require.NoError(t, err)
	_, err = svc.Provision(context.Background(), nil, second.ID)
	require.NoError(t, err)

	var distinct int64
	require.NoError(t, db.Model(&model.Code{}).Distinct("invitation_code").Count(&distinct).Error)
	assert.EqualValues(t, 2*model.CodePoolSize, distinct)
}

func TestCodeProvisionSpaceExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codeRepo := mocks.NewMockCodeRepositoryIface(ctrl)
	codeRepo.EXPECT().
		TokenExists(gomock.Any(), gomock.Any()).
		Return(true, nil).
		AnyTimes()

	svc := service.NewCodeService(codeRepo, testLogger())

	_, err := svc.Provision(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCodeSpaceExhausted)
}

func TestCodeConsume(t *testing.T) {
	db := newTestDB(t)
	business := seedBusiness(t, db)
	svc := service.NewCodeService(repository.NewCodeRepository(db), testLogger())

	codes, err := svc.Provision(context.Background(), nil, business.ID)
	require.NoError(t, err)
	token := codes[0].InvitationCode

	consumed, err := svc.Consume(context.Background(), nil, token)
	require.NoError(t, err)
	assert.False(t, consumed.IsActive)

	var stored model.Code
	require.NoError(t, db.First(&stored, "invitation_code = ?", token).Error)
	assert.False(t, stored.IsActive)

	// Once burnt, the code never works again.
	_, err = svc.Consume(context.Background(), nil, token)
	assert.ErrorIs(t, err, domain.ErrCodeInvalidOrInactive)

	// But its status remains queryable.
	status, err := svc.CheckStatus(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, status.IsActive)
}

func TestCodeConsumeUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewCodeService(repository.NewCodeRepository(db), testLogger())

	_, err := svc.Consume(context.Background(), nil, "ZZZZZ")
	assert.ErrorIs(t, err, domain.ErrCodeInvalidOrInactive)

	_, err = svc.CheckStatus(context.Background(), "ZZZZZ")
	assert.ErrorIs(t, err, domain.ErrCodeNotFound)
}

func TestCodeConsumeConcurrent(t *testing.T) {
	db := newTestDB(t)
	business := seedBusiness(t, db)
	svc := service.NewCodeService(repository.NewCodeRepository(db), testLogger())

	codes, err := svc.Provision(context.Background(), nil, business.ID)
	require.NoError(t, err)
	token := codes[0].InvitationCode

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Consume(context.Background(), nil, token)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, refusals int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, domain.ErrCodeInvalidOrInactive):
			refusals++
		}
	}

	assert.Equal(t, 1, successes, "exactly one consumer may win")
	assert.Equal(t, workers-1, refusals)
}

func TestCodeConsumeRemovesDuplicates(t *testing.T) {
	db := newTestDB(t)
	business := seedBusiness(t, db)
	svc := service.NewCodeService(repository.NewCodeRepository(db), testLogger())

	// Forge duplicate active rows around the unique index to simulate a
	// data integrity bug.
	require.NoError(t, db.Exec("DROP INDEX IF EXISTS idx_codes_invitation_code").Error)
	original := model.Code{InvitationCode: "AAAAA", BusinessID: business.ID, IsActive: true}
	require.NoError(t, db.Create(&original).Error)
	duplicate := model.Code{InvitationCode: "AAAAA", BusinessID: business.ID, IsActive: true}
	require.NoError(t, db.Create(&duplicate).Error)

	var active int64
	require.NoError(t, db.Model(&model.Code{}).
		Where("invitation_code = ? AND is_active = ?", "AAAAA", true).
		Count(&active).Error)
	require.EqualValues(t, 2, active)

	_, err := svc.Consume(context.Background(), nil, "AAAAA")
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Code{}).
		Where("invitation_code = ? AND is_active = ?", "AAAAA", true).
		Count(&active).Error)
	assert.EqualValues(t, 0, active)

	var remaining int64
	require.NoError(t, db.Model(&model.Code{}).
		Where("invitation_code = ?", "AAAAA").
		Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "the stray duplicate is deleted, not just deactivated")
}
