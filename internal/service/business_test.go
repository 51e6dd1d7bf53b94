package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/auth"
	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type businessFixture struct {
	db          *gorm.DB
	users       *repository.UserRepository
	businessSvc *service.BusinessService
	userSvc     *service.UserService
}

func newBusinessFixture(t *testing.T) *businessFixture {
	t.Helper()

	db := newTestDB(t)
	logger := testLogger()
	users := repository.NewUserRepository(db)
	txManager := repository.NewTxManager(db)

	codeSvc := service.NewCodeService(repository.NewCodeRepository(db), logger)
	businessSvc := service.NewBusinessService(
		repository.NewBusinessRepository(db),
		users,
		repository.NewCategoryRepository(db),
		codeSvc,
		txManager,
		nil,
		logger,
	)
	userSvc := service.NewUserService(users, businessSvc, auth.NewPasswordHasher(), txManager, nil, logger)

	return &businessFixture{db: db, users: users, businessSvc: businessSvc, userSvc: userSvc}
}

func managerInput() service.CreateBusinessInput {
	return service.CreateBusinessInput{
		Name:         "Chez Marie",
		CategoryName: "Restaurant",
		Country:      "CM",
		City:         "Douala",
	}
}

func TestBusinessCreate(t *testing.T) {
	ctx := context.Background()
	f := newBusinessFixture(t)

	owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
	require.NoError(t, f.users.Create(ctx, owner))

	out, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
	require.NoError(t, err)
	assert.True(t, out.Business.Active)
	assert.Equal(t, "Restaurant", out.Business.Category.Name)
	require.Len(t, out.Codes, model.CodePoolSize)

	membership, err := f.users.FindMembership(ctx, owner.ID, out.Business.ID)
	require.NoError(t, err)
	assert.True(t, membership.IsActive)

	// Same identity tuple is refused.
	_, err = f.businessSvc.Create(ctx, owner.ID, managerInput())
	assert.ErrorIs(t, err, domain.ErrDuplicateBusiness)

	// Same name elsewhere is fine.
	other := managerInput()
	other.City = "Yaoundé"
	_, err = f.businessSvc.Create(ctx, owner.ID, other)
	assert.NoError(t, err)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user, business and codes together", func(t *testing.T) {
		f := newBusinessFixture(t)

		out, err := f.userSvc.Signup(ctx, service.SignupInput{
			Email:           "marie@example.com",
			Password:        "s3cret-pass",
			ConfirmPassword: "s3cret-pass",
			Business:        managerInput(),
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, out.User.Role)
		assert.Len(t, out.Codes, model.CodePoolSize)

		membership, err := f.users.FindMembership(ctx, out.User.ID, out.Business.ID)
		require.NoError(t, err)
		assert.True(t, membership.IsActive)
	})

	t.Run("rejects mismatched passwords", func(t *testing.T) {
		f := newBusinessFixture(t)

		_, err := f.userSvc.Signup(ctx, service.SignupInput{
			Email:           "marie@example.com",
			Password:        "s3cret-pass",
			ConfirmPassword: "different-pass",
			Business:        managerInput(),
		})
		assert.ErrorIs(t, err, domain.ErrPasswordsDoNotMatch)
	})

	t.Run("rejects a taken email and leaves no partial state", func(t *testing.T) {
		f := newBusinessFixture(t)

		input := service.SignupInput{
			Email:           "marie@example.com",
			Password:        "s3cret-pass",
			ConfirmPassword: "s3cret-pass",
			Business:        managerInput(),
		}
		_, err := f.userSvc.Signup(ctx, input)
		require.NoError(t, err)

		input.Business.City = "Yaoundé"
		_, err = f.userSvc.Signup(ctx, input)
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

		var businesses int64
		require.NoError(t, f.db.Model(&model.Business{}).Count(&businesses).Error)
		assert.EqualValues(t, 1, businesses)
	})

	t.Run("rolls back the user when the business is a duplicate", func(t *testing.T) {
		f := newBusinessFixture(t)

		first := service.SignupInput{
			Email:           "marie@example.com",
			Password:        "s3cret-pass",
			ConfirmPassword: "s3cret-pass",
			Business:        managerInput(),
		}
		_, err := f.userSvc.Signup(ctx, first)
		require.NoError(t, err)

		second := first
		second.Email = "paul@example.com"
		_, err = f.userSvc.Signup(ctx, second)
		assert.ErrorIs(t, err, domain.ErrDuplicateBusiness)

		_, err = f.users.FindByEmail(ctx, "paul@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		var codes int64
		require.NoError(t, f.db.Model(&model.Code{}).Count(&codes).Error)
		assert.EqualValues(t, model.CodePoolSize, codes, "no orphaned codes from the failed signup")
	})
}

func TestBusinessDetail(t *testing.T) {
	ctx := context.Background()
	f := newBusinessFixture(t)

	owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
	require.NoError(t, f.users.Create(ctx, owner))

	out, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
	require.NoError(t, err)

	for _, eval := range []float64{5, 4, 4} {
		e := eval
		id := out.Business.ID
		require.NoError(t, f.db.Create(&model.Review{BusinessID: &id, Evaluation: &e, Active: true}).Error)
	}

	detail, err := f.businessSvc.Get(ctx, out.Business.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cameroon", detail.CountryName)
	assert.True(t, detail.ReviewsInfo.HasReviews)
	assert.EqualValues(t, 3, detail.ReviewsInfo.TotalReviews)
	assert.InDelta(t, 4.33, detail.ReviewsInfo.TotalEvaluation, 0.001, "average is rounded to two decimals")
}

func TestBusinessListFilters(t *testing.T) {
	ctx := context.Background()
	f := newBusinessFixture(t)

	owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
	require.NoError(t, f.users.Create(ctx, owner))

	first, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
	require.NoError(t, err)

	other := managerInput()
	other.City = "Yaoundé"
	second, err := f.businessSvc.Create(ctx, owner.ID, other)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(second.Business).Update("showeval", false).Error)

	_, total, err := f.businessSvc.List(ctx, repository.BusinessFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	evalOnly, total, err := f.businessSvc.List(ctx, repository.BusinessFilter{ShowEvalOnly: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, first.Business.ID, evalOnly[0].ID)

	byCity, total, err := f.businessSvc.List(ctx, repository.BusinessFilter{City: "yao"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, second.Business.ID, byCity[0].ID)
}

func TestBusinessUpdatePermissions(t *testing.T) {
	ctx := context.Background()
	f := newBusinessFixture(t)

	owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
	require.NoError(t, f.users.Create(ctx, owner))
	stranger := &model.User{Email: "paul@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
	require.NoError(t, f.users.Create(ctx, stranger))

	out, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
	require.NoError(t, err)

	phone := "+237699000000"
	_, err = f.businessSvc.Update(ctx, stranger, out.Business.ID, service.UpdateBusinessInput{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.businessSvc.Update(ctx, owner, out.Business.ID, service.UpdateBusinessInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	// Staff can edit anything.
	staff := &model.User{Email: "staff@example.com", PasswordHash: "x", Role: model.RoleCustomer, IsActive: true, IsStaff: true}
	require.NoError(t, f.users.Create(ctx, staff))
	desc := "Bistro du port"
	updated, err = f.businessSvc.Update(ctx, staff, out.Business.ID, service.UpdateBusinessInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
}
