package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/service"
)

func TestCategoryCreate(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	svc := service.NewCategoryService(repository.NewCategoryRepository(db))

	staff := &model.User{Email: "staff@example.com", PasswordHash: "x", Role: model.RoleCustomer, IsActive: true, IsStaff: true}
	manager := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}

	_, err := svc.Create(ctx, manager, service.CategoryInput{Name: "Restaurant"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	category, err := svc.Create(ctx, staff, service.CategoryInput{
		Name:   "Restaurant",
		Styles: map[string]string{"color": "#1a7f37"},
	})
	require.NoError(t, err)
	assert.True(t, category.Active)
	assert.False(t, category.CreatedAt.IsZero())
	assert.False(t, category.UpdatedAt.IsZero())

	stored, err := svc.Get(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Restaurant", stored.Name)
	assert.Equal(t, "#1a7f37", stored.Styles["color"])
	assert.WithinDuration(t, category.CreatedAt, stored.CreatedAt, time.Second)
}
