//go:build unit

package commands_test

import (
	"context"
	"testing"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/tests/common/builder"
	commandsmock "shareit/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newUserCommandsFixture(t *testing.T) (*commandsmock.MockUserRepository, commands.UserCommands) {
	ctrl := gomock.NewController(t)
	repo := commandsmock.NewMockUserRepository(ctrl)
	return repo, commands.NewUserCommands(repo)
}

func TestUserCommandsCreate(t *testing.T) {
	ctx := context.Background()
	params := commands.CreateUserParams{Name: "Alice", Email: "alice@example.com"}

	t.Run("success", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		repo.EXPECT().EmailTaken(ctx, params.Email, uuid.Nil).Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) (uuid.UUID, error) {
				return u.ID(), nil
			})

		view, err := sut.Create(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, "Alice", view.Name)
		assert.Equal(t, "alice@example.com", view.Email)
	})

	t.Run("taken email is a conflict", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		repo.EXPECT().EmailTaken(ctx, params.Email, uuid.Nil).Return(true, nil)

		_, err := sut.Create(ctx, params)
		require.ErrorIs(t, err, errs.ErrEmailConflict)
	})

	t.Run("unique index violation under concurrent create is a conflict", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		repo.EXPECT().EmailTaken(ctx, params.Email, uuid.Nil).Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("duplicate email", errs.New("23505"), infra.KindDuplicateKey))

		_, err := sut.Create(ctx, params)
		require.ErrorIs(t, err, errs.ErrEmailConflict)
	})

	t.Run("invalid email is invalid-state", func(t *testing.T) {
		_, sut := newUserCommandsFixture(t)
		_, err := sut.Create(ctx, commands.CreateUserParams{Name: "Alice", Email: "not-an-email"})
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestUserCommandsUpdate(t *testing.T) {
	ctx := context.Background()
	existing := builder.NewUserBuilder()

	t.Run("success: changes email after uniqueness check", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		newEmail := "new@example.com"
		patch := commands.UserPatch{Email: &newEmail}

		repo.EXPECT().FindByID(ctx, existing.ID).Return(existing.BuildSnapshot(), nil)
		repo.EXPECT().EmailTaken(ctx, newEmail, existing.ID).Return(false, nil)
		repo.EXPECT().Update(ctx, existing.ID, patch).Return(nil)

		view, err := sut.Update(ctx, existing.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, newEmail, view.Email)
		assert.Equal(t, existing.Name, view.Name)
	})

	t.Run("same email skips the uniqueness check", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		same := existing.Email
		patch := commands.UserPatch{Email: &same}

		repo.EXPECT().FindByID(ctx, existing.ID).Return(existing.BuildSnapshot(), nil)
		repo.EXPECT().Update(ctx, existing.ID, patch).Return(nil)

		_, err := sut.Update(ctx, existing.ID, patch)
		require.NoError(t, err)
	})

	t.Run("email held by another user is a conflict", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		taken := "taken@example.com"
		patch := commands.UserPatch{Email: &taken}

		repo.EXPECT().FindByID(ctx, existing.ID).Return(existing.BuildSnapshot(), nil)
		repo.EXPECT().EmailTaken(ctx, taken, existing.ID).Return(true, nil)

		_, err := sut.Update(ctx, existing.ID, patch)
		require.ErrorIs(t, err, errs.ErrEmailConflict)
	})

	t.Run("blank fields leave the user untouched", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		blank := "   "
		patch := commands.UserPatch{Name: &blank, Email: &blank}

		repo.EXPECT().FindByID(ctx, existing.ID).Return(existing.BuildSnapshot(), nil)

		view, err := sut.Update(ctx, existing.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, existing.Name, view.Name)
		assert.Equal(t, existing.Email, view.Email)
	})

	t.Run("missing user is not-found", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		name := "Bob"
		repo.EXPECT().FindByID(ctx, existing.ID).Return(nil, notFoundErr("user not found"))

		_, err := sut.Update(ctx, existing.ID, commands.UserPatch{Name: &name})
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})
}

func TestUserCommandsDelete(t *testing.T) {
	ctx := context.Background()
	existing := builder.NewUserBuilder()

	t.Run("success", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		repo.EXPECT().FindByID(ctx, existing.ID).Return(existing.BuildSnapshot(), nil)
		repo.EXPECT().Delete(ctx, existing.ID).Return(nil)

		require.NoError(t, sut.Delete(ctx, existing.ID))
	})

	t.Run("missing user is not-found", func(t *testing.T) {
		repo, sut := newUserCommandsFixture(t)
		repo.EXPECT().FindByID(ctx, existing.ID).Return(nil, notFoundErr("user not found"))

		require.ErrorIs(t, sut.Delete(ctx, existing.ID), errs.ErrResourceNotFound)
	})
}
