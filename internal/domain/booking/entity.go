package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrItemUnavailable = errors.New("item not available for booking")
	ErrOwnBooking      = errors.New("owner cannot book own item")
	ErrAlreadyDecided  = errors.New("booking already decided")
)

// ItemSpec is the slice of an item a booking decision depends on, snapshotted
// at creation time. Availability is not re-checked afterwards.
type ItemSpec struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Available bool
}

type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	window    TimeWindow
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ItemID() uuid.UUID    { return b.itemID }
func (b *Booking) BookerID() uuid.UUID  { return b.bookerID }
func (b *Booking) Window() TimeWindow   { return b.window }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
