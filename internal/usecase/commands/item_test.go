//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/item"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/tests/common/builder"
	commandsmock "shareit/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type itemCommandsFixture struct {
	itemRepo    *commandsmock.MockItemRepository
	userRepo    *commandsmock.MockUserRepository
	commentRepo *commandsmock.MockCommentRepository
	history     *commandsmock.MockBookingHistory
	sut         commands.ItemCommands
}

func newItemCommandsFixture(t *testing.T) *itemCommandsFixture {
	ctrl := gomock.NewController(t)
	f := &itemCommandsFixture{
		itemRepo:    commandsmock.NewMockItemRepository(ctrl),
		userRepo:    commandsmock.NewMockUserRepository(ctrl),
		commentRepo: commandsmock.NewMockCommentRepository(ctrl),
		history:     commandsmock.NewMockBookingHistory(ctrl),
	}
	f.sut = commands.NewItemCommands(
		f.itemRepo,
		f.userRepo,
		f.commentRepo,
		f.history,
		clock.NewMockClock(fixedNow),
	)
	return f
}

func TestItemCommandsCreate(t *testing.T) {
	ctx := context.Background()
	owner := builder.NewUserBuilder()
	available := true
	params := commands.CreateItemParams{
		Name:        "Drill",
		Description: "18V cordless",
		Available:   &available,
	}

	t.Run("success", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, owner.ID).Return(owner.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, i *item.Item) (uuid.UUID, error) {
				assert.Equal(t, owner.ID, i.OwnerID())
				return i.ID(), nil
			})

		view, err := f.sut.Create(ctx, owner.ID, params)
		require.NoError(t, err)
		assert.Equal(t, "Drill", view.Name)
		assert.True(t, view.Available)
	})

	t.Run("unknown owner is resource-not-found", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, owner.ID).Return(nil, notFoundErr("user not found"))

		_, err := f.sut.Create(ctx, owner.ID, params)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("blank name is invalid-state", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, owner.ID).Return(owner.BuildSnapshot(), nil)

		bad := params
		bad.Name = "  "
		_, err := f.sut.Create(ctx, owner.ID, bad)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestItemCommandsUpdate(t *testing.T) {
	ctx := context.Background()
	itm := builder.NewItemBuilder()
	owner := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = itm.OwnerID })

	newName := "Hammer Drill"
	patch := commands.ItemPatch{Name: &newName}

	t.Run("success: merges only provided fields", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, owner.ID).Return(owner.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().Update(ctx, itm.ID, patch).Return(nil)

		view, err := f.sut.Update(ctx, owner.ID, itm.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, newName, view.Name)
		assert.Equal(t, itm.Description, view.Description)
		assert.Equal(t, itm.Available, view.Available)
	})

	t.Run("non-owner sees not-found", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		stranger := builder.NewUserBuilder()
		f.userRepo.EXPECT().FindByID(ctx, stranger.ID).Return(stranger.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)

		_, err := f.sut.Update(ctx, stranger.ID, itm.ID, patch)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("missing item is not-found", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, owner.ID).Return(owner.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(nil, notFoundErr("item not found"))

		_, err := f.sut.Update(ctx, owner.ID, itm.ID, patch)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})
}

func TestItemCommandsAddComment(t *testing.T) {
	ctx := context.Background()
	itm := builder.NewItemBuilder()
	author := builder.NewUserBuilder()

	t.Run("success: eligible author leaves a comment", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, author.ID).Return(author.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)
		f.history.EXPECT().HasFinishedBooking(ctx, itm.ID, author.ID, fixedNow).Return(true, nil)
		f.commentRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *item.Comment) (uuid.UUID, error) {
				assert.Equal(t, itm.ID, c.ItemID())
				assert.Equal(t, author.ID, c.AuthorID())
				assert.Equal(t, fixedNow, c.Created())
				return c.ID(), nil
			})

		view, err := f.sut.AddComment(ctx, author.ID, itm.ID, "works great")
		require.NoError(t, err)
		assert.Equal(t, "works great", view.Text)
		assert.Equal(t, author.Name, view.AuthorName)
		assert.Equal(t, fixedNow, view.Created)
	})

	t.Run("author without a finished approved booking is invalid-state", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, author.ID).Return(author.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)
		f.history.EXPECT().HasFinishedBooking(ctx, itm.ID, author.ID, fixedNow).Return(false, nil)

		_, err := f.sut.AddComment(ctx, author.ID, itm.ID, "works great")
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("eligibility is checked against the same instant as created", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		var eligibilityAt time.Time
		f.userRepo.EXPECT().FindByID(ctx, author.ID).Return(author.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)
		f.history.EXPECT().HasFinishedBooking(ctx, itm.ID, author.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, at time.Time) (bool, error) {
				eligibilityAt = at
				return true, nil
			})
		f.commentRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *item.Comment) (uuid.UUID, error) {
				assert.Equal(t, eligibilityAt, c.Created())
				return c.ID(), nil
			})

		_, err := f.sut.AddComment(ctx, author.ID, itm.ID, "still works")
		require.NoError(t, err)
	})

	t.Run("missing item is not-found", func(t *testing.T) {
		f := newItemCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, author.ID).Return(author.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(nil, notFoundErr("item not found"))

		_, err := f.sut.AddComment(ctx, author.ID, itm.ID, "works great")
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})
}
