package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/service"
)

func TestCreateCollaborator(t *testing.T) {
	ctx := context.Background()

	t.Run("joins the account to every listed business", func(t *testing.T) {
		f := newBusinessFixture(t)

		owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, owner))

		first, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
		require.NoError(t, err)
		other := managerInput()
		other.City = "Yaoundé"
		second, err := f.businessSvc.Create(ctx, owner.ID, other)
		require.NoError(t, err)

		collaborator, err := f.userSvc.CreateCollaborator(ctx, owner, service.CreateCollaboratorInput{
			Email:       "jean@example.com",
			Password:    "s3cret-pass",
			BusinessIDs: []uuid.UUID{first.Business.ID, second.Business.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleCollaborator, collaborator.Role)

		for _, businessID := range []uuid.UUID{first.Business.ID, second.Business.ID} {
			membership, err := f.users.FindMembership(ctx, collaborator.ID, businessID)
			require.NoError(t, err)
			assert.True(t, membership.IsActive)
		}
	})

	t.Run("requires membership of every listed business", func(t *testing.T) {
		f := newBusinessFixture(t)

		owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, owner))
		stranger := &model.User{Email: "paul@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, stranger))

		mine, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
		require.NoError(t, err)
		theirs := managerInput()
		theirs.City = "Yaoundé"
		notMine, err := f.businessSvc.Create(ctx, stranger.ID, theirs)
		require.NoError(t, err)

		_, err = f.userSvc.CreateCollaborator(ctx, owner, service.CreateCollaboratorInput{
			Email:       "jean@example.com",
			Password:    "s3cret-pass",
			BusinessIDs: []uuid.UUID{mine.Business.ID, notMine.Business.ID},
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = f.users.FindByEmail(ctx, "jean@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "the refusal creates no account")
	})

	t.Run("rejects an empty business list", func(t *testing.T) {
		f := newBusinessFixture(t)

		owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, owner))

		_, err := f.userSvc.CreateCollaborator(ctx, owner, service.CreateCollaboratorInput{
			Email:    "jean@example.com",
			Password: "s3cret-pass",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAttachBusinesses(t *testing.T) {
	ctx := context.Background()

	t.Run("creates memberships waiting for activation", func(t *testing.T) {
		f := newBusinessFixture(t)

		owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, owner))
		newcomer := &model.User{Email: "jean@example.com", PasswordHash: "x", Role: model.RoleCollaborator, IsActive: true}
		require.NoError(t, f.users.Create(ctx, newcomer))

		out, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
		require.NoError(t, err)

		memberships, err := f.userSvc.AttachBusinesses(ctx, owner, newcomer.ID, service.AttachBusinessesInput{
			BusinessIDs: []uuid.UUID{out.Business.ID},
		})
		require.NoError(t, err)
		require.Len(t, memberships, 1)
		assert.False(t, memberships[0].IsActive)

		stored, err := f.users.FindMembership(ctx, newcomer.ID, out.Business.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)

		// The pending membership grants nothing yet.
		businesses, err := f.userSvc.Businesses(ctx, newcomer.ID)
		require.NoError(t, err)
		assert.Empty(t, businesses)
	})

	t.Run("requires the caller to belong to the business", func(t *testing.T) {
		f := newBusinessFixture(t)

		owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, owner))
		stranger := &model.User{Email: "paul@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, stranger))

		out, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
		require.NoError(t, err)

		_, err = f.userSvc.AttachBusinesses(ctx, stranger, stranger.ID, service.AttachBusinessesInput{
			BusinessIDs: []uuid.UUID{out.Business.ID},
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("refuses a user already attached", func(t *testing.T) {
		f := newBusinessFixture(t)

		owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, owner))

		out, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
		require.NoError(t, err)

		_, err = f.userSvc.AttachBusinesses(ctx, owner, owner.ID, service.AttachBusinessesInput{
			BusinessIDs: []uuid.UUID{out.Business.ID},
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateMember)
	})

	t.Run("rejects an unknown user", func(t *testing.T) {
		f := newBusinessFixture(t)

		owner := &model.User{Email: "marie@example.com", PasswordHash: "x", Role: model.RoleManager, IsActive: true}
		require.NoError(t, f.users.Create(ctx, owner))

		out, err := f.businessSvc.Create(ctx, owner.ID, managerInput())
		require.NoError(t, err)

		_, err = f.userSvc.AttachBusinesses(ctx, owner, uuid.New(), service.AttachBusinessesInput{
			BusinessIDs: []uuid.UUID{out.Business.ID},
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
