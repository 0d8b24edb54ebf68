package commands

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	ItemID uuid.UUID
	Start  time.Time
	End    time.Time
}

type BookingCommands interface {
	Create(ctx context.Context, bookerID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error)
	// Decide applies the owner's one-shot approve/reject transition.
	Decide(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo    BookingRepository
	itemRepo       ItemRepository
	userRepo       UserRepository
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:    bookingRepo,
		itemRepo:       itemRepo,
		userRepo:       userRepo,
		factory:        factory,
		bookingQueries: bookingQueries,
	}
}

// Create checks, in order: booker resolves, item resolves, item available,
// window valid and strictly in the future, booker is not the owner. Each
// violation is a distinct failure kind.
func (c *bookingCommandsImpl) Create(ctx context.Context, bookerID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error) {
	if err := c.resolveActor(ctx, bookerID); err != nil {
		return nil, err
	}

	itemSnap, err := c.itemRepo.FindByID(ctx, params.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	entity, err := c.factory.NewBooking(
		booking.ItemSpec{
			ID:        itemSnap.ID,
			OwnerID:   itemSnap.OwnerID,
			Available: itemSnap.Available,
		},
		bookerID,
		params.Start,
		params.End,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidState)
	}

	id, err := c.bookingRepo.Create(ctx, entity)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create booking")
	}

	slog.Info("booking created",
		"booking_id", id,
		"item_id", itemSnap.ID,
		"booker_id", bookerID,
	)

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) Decide(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (*queries.BookingView, error) {
	if err := c.resolveActor(ctx, actorID); err != nil {
		return nil, err
	}

	snap, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}

	// Ownership mismatch is reported identically to nonexistence so the
	// booking's existence is not leaked to non-owners.
	if snap.ItemOwnerID != actorID {
		return nil, errs.Mark(errs.Newf("booking not found: id=%s", bookingID), errs.ErrResourceNotFound)
	}

	if snap.Status != booking.StatusWaiting {
		return nil, errs.Mark(errs.New("booking already decided"), errs.ErrInvalidState)
	}

	status := booking.StatusRejected
	if approve {
		status = booking.StatusApproved
	}

	// The store applies the transition as a compare-and-set on WAITING;
	// losing the race to a concurrent decision is the same invalid-state
	// failure a late caller would see.
	won, err := c.bookingRepo.SetDecision(ctx, bookingID, status)
	if err != nil {
		return nil, errs.Wrap(err, "failed to update booking status")
	}
	if !won {
		return nil, errs.Mark(errs.New("booking already decided"), errs.ErrInvalidState)
	}

	slog.Info("booking decided",
		"booking_id", bookingID,
		"owner_id", actorID,
		"status", status,
	)

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) resolveActor(ctx context.Context, actorID uuid.UUID) error {
	if _, err := c.userRepo.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrIdentityNotAuthorized)
		}
		return errs.Wrap(err, "failed to resolve actor")
	}
	return nil
}
