package commands

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side view types.

type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type ItemSnapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
}

type BookingSnapshot struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	Start       time.Time
	End         time.Time
	Status      booking.Status
}

type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

type UserPatch struct {
	Name  *string
	Email *string
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	// EmailTaken reports whether another user (any user when excludeID is
	// uuid.Nil) already holds the email, case-insensitively.
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}

type ItemRepository interface {
	Create(ctx context.Context, i *item.Item) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch ItemPatch) error
	FindByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// SetDecision performs the WAITING -> decided transition as a
	// compare-and-set. It returns false when the booking was no longer
	// WAITING, so concurrent decisions cannot both win.
	SetDecision(ctx context.Context, id uuid.UUID, status booking.Status) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *item.Comment) (uuid.UUID, error)
}

// BookingHistory is the read query commenting eligibility rests on: a
// finished APPROVED booking of the item by the author.
type BookingHistory interface {
	HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, at time.Time) (bool, error)
}
