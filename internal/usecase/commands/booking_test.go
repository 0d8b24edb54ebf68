//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/tests/common/builder"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type bookingCommandsFixture struct {
	bookingRepo    *commandsmock.MockBookingRepository
	itemRepo       *commandsmock.MockItemRepository
	userRepo       *commandsmock.MockUserRepository
	bookingQueries *queriesmock.MockBookingQueries
	sut            commands.BookingCommands
}

func newBookingCommandsFixture(t *testing.T) *bookingCommandsFixture {
	ctrl := gomock.NewController(t)
	f := &bookingCommandsFixture{
		bookingRepo:    commandsmock.NewMockBookingRepository(ctrl),
		itemRepo:       commandsmock.NewMockItemRepository(ctrl),
		userRepo:       commandsmock.NewMockUserRepository(ctrl),
		bookingQueries: queriesmock.NewMockBookingQueries(ctrl),
	}
	f.sut = commands.NewBookingCommands(
		f.bookingRepo,
		f.itemRepo,
		f.userRepo,
		booking.NewFactory(clock.NewMockClock(fixedNow)),
		f.bookingQueries,
	)
	return f
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, errs.New("no rows"), infra.KindNotFound)
}

func TestBookingCommandsCreate(t *testing.T) {
	ctx := context.Background()

	booker := builder.NewUserBuilder()
	itm := builder.NewItemBuilder()
	params := commands.CreateBookingParams{
		ItemID: itm.ID,
		Start:  fixedNow.Add(time.Hour),
		End:    fixedNow.Add(2 * time.Hour),
	}

	t.Run("success: persists WAITING booking and returns its view", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		bookingID := uuid.New()
		view := builder.NewBookingBuilder(fixedNow).BuildView()
		view.ID = bookingID

		f.userRepo.EXPECT().FindByID(ctx, booker.ID).Return(booker.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)
		f.bookingRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
				assert.Equal(t, booking.StatusWaiting, b.Status())
				assert.Equal(t, itm.ID, b.ItemID())
				assert.Equal(t, booker.ID, b.BookerID())
				return bookingID, nil
			})
		f.bookingQueries.EXPECT().GetByIDSystem(ctx, bookingID).Return(view, nil)

		actual, err := f.sut.Create(ctx, booker.ID, params)
		require.NoError(t, err)
		assert.Equal(t, bookingID, actual.ID)
	})

	t.Run("unknown booker is not authorized", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, booker.ID).Return(nil, notFoundErr("user not found"))

		_, err := f.sut.Create(ctx, booker.ID, params)
		require.ErrorIs(t, err, errs.ErrIdentityNotAuthorized)
	})

	t.Run("missing item is resource-not-found", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, booker.ID).Return(booker.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(nil, notFoundErr("item not found"))

		_, err := f.sut.Create(ctx, booker.ID, params)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("unavailable item is invalid-state", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		unavailable := itm.BuildSnapshot()
		unavailable.Available = false

		f.userRepo.EXPECT().FindByID(ctx, booker.ID).Return(booker.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(unavailable, nil)

		_, err := f.sut.Create(ctx, booker.ID, params)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.ErrorIs(t, err, booking.ErrItemUnavailable)
	})

	t.Run("window starting in the past is invalid-state", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, booker.ID).Return(booker.BuildSnapshot(), nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)

		past := params
		past.Start = fixedNow.Add(-time.Hour)
		past.End = fixedNow.Add(time.Hour)

		_, err := f.sut.Create(ctx, booker.ID, past)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)
	})

	t.Run("owner booking own item is invalid-state", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, itm.OwnerID).Return(&commands.UserSnapshot{ID: itm.OwnerID}, nil)
		f.itemRepo.EXPECT().FindByID(ctx, itm.ID).Return(itm.BuildSnapshot(), nil)

		_, err := f.sut.Create(ctx, itm.OwnerID, params)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.ErrorIs(t, err, booking.ErrOwnBooking)
	})
}

func TestBookingCommandsDecide(t *testing.T) {
	ctx := context.Background()

	b := builder.NewBookingBuilder(fixedNow)
	owner := &commands.UserSnapshot{ID: b.OwnerID, Name: "Owner"}

	t.Run("success: approve transitions WAITING to APPROVED", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		view := b.BuildView()
		view.Status = "APPROVED"

		f.userRepo.EXPECT().FindByID(ctx, b.OwnerID).Return(owner, nil)
		f.bookingRepo.EXPECT().FindByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)
		f.bookingRepo.EXPECT().SetDecision(ctx, b.ID, booking.StatusApproved).Return(true, nil)
		f.bookingQueries.EXPECT().GetByIDSystem(ctx, b.ID).Return(view, nil)

		actual, err := f.sut.Decide(ctx, b.OwnerID, b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", actual.Status)
	})

	t.Run("success: reject transitions WAITING to REJECTED", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		view := b.BuildView()
		view.Status = "REJECTED"

		f.userRepo.EXPECT().FindByID(ctx, b.OwnerID).Return(owner, nil)
		f.bookingRepo.EXPECT().FindByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)
		f.bookingRepo.EXPECT().SetDecision(ctx, b.ID, booking.StatusRejected).Return(true, nil)
		f.bookingQueries.EXPECT().GetByIDSystem(ctx, b.ID).Return(view, nil)

		actual, err := f.sut.Decide(ctx, b.OwnerID, b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", actual.Status)
	})

	t.Run("unknown actor is not authorized", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, b.OwnerID).Return(nil, notFoundErr("user not found"))

		_, err := f.sut.Decide(ctx, b.OwnerID, b.ID, true)
		require.ErrorIs(t, err, errs.ErrIdentityNotAuthorized)
	})

	t.Run("missing booking is resource-not-found", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, b.OwnerID).Return(owner, nil)
		f.bookingRepo.EXPECT().FindByID(ctx, b.ID).Return(nil, notFoundErr("booking not found"))

		_, err := f.sut.Decide(ctx, b.OwnerID, b.ID, true)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("non-owner sees not-found, not forbidden", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		stranger := &commands.UserSnapshot{ID: uuid.New(), Name: "Stranger"}

		f.userRepo.EXPECT().FindByID(ctx, stranger.ID).Return(stranger, nil)
		f.bookingRepo.EXPECT().FindByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)

		_, err := f.sut.Decide(ctx, stranger.ID, b.ID, true)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
		assert.NotErrorIs(t, err, errs.ErrIdentityNotAuthorized)
	})

	t.Run("already decided booking is invalid-state", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		decided := b.BuildSnapshot()
		decided.Status = booking.StatusApproved

		f.userRepo.EXPECT().FindByID(ctx, b.OwnerID).Return(owner, nil)
		f.bookingRepo.EXPECT().FindByID(ctx, b.ID).Return(decided, nil)

		_, err := f.sut.Decide(ctx, b.OwnerID, b.ID, false)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("losing the decision race is invalid-state", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		f.userRepo.EXPECT().FindByID(ctx, b.OwnerID).Return(owner, nil)
		f.bookingRepo.EXPECT().FindByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)
		f.bookingRepo.EXPECT().SetDecision(ctx, b.ID, booking.StatusApproved).Return(false, nil)

		_, err := f.sut.Decide(ctx, b.OwnerID, b.ID, true)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

// casBookingRepo applies decisions with a mutex-guarded compare-and-set,
// mirroring the store's UPDATE ... WHERE status = 'WAITING'.
type casBookingRepo struct {
	mu   sync.Mutex
	snap commands.BookingSnapshot
}

func (r *casBookingRepo) Create(context.Context, *booking.Booking) (uuid.UUID, error) {
	return uuid.Nil, errs.New("not used")
}

func (r *casBookingRepo) FindByID(context.Context, uuid.UUID) (*commands.BookingSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snap
	return &snap, nil
}

func (r *casBookingRepo) SetDecision(_ context.Context, _ uuid.UUID, status booking.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap.Status != booking.StatusWaiting {
		return false, nil
	}
	r.snap.Status = status
	return true, nil
}

func TestBookingCommandsDecideConcurrent(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	b := builder.NewBookingBuilder(fixedNow)
	repo := &casBookingRepo{snap: *b.BuildSnapshot()}

	userRepo := commandsmock.NewMockUserRepository(ctrl)
	userRepo.EXPECT().FindByID(gomock.Any(), b.OwnerID).
		Return(&commands.UserSnapshot{ID: b.OwnerID}, nil).AnyTimes()

	bookingQueries := queriesmock.NewMockBookingQueries(ctrl)
	bookingQueries.EXPECT().GetByIDSystem(gomock.Any(), b.ID).
		Return(b.BuildView(), nil).AnyTimes()

	sut := commands.NewBookingCommands(
		repo,
		commandsmock.NewMockItemRepository(ctrl),
		userRepo,
		booking.NewFactory(clock.NewMockClock(fixedNow)),
		bookingQueries,
	)

	errsCh := make(chan error, 2)
	var wg sync.WaitGroup
	for _, approve := range []bool{true, false} {
		wg.Add(1)
		go func(approve bool) {
			defer wg.Done()
			_, err := sut.Decide(ctx, b.OwnerID, b.ID, approve)
			errsCh <- err
		}(approve)
	}
	wg.Wait()
	close(errsCh)

	var wins, losses int
	for err := range errsCh {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, errs.ErrInvalidState)
			losses++
		}
	}
	// Exactly one decision may win, regardless of interleaving.
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
	assert.True(t, repo.snap.Status.IsDecided())
}
