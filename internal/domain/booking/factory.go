package booking

import (
	"time"

	"shareit/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// NewBooking validates a creation request and produces a WAITING booking.
// Check order is fixed: availability, then window, then self-booking.
func (f *Factory) NewBooking(
	item ItemSpec,
	bookerID uuid.UUID,
	start, end time.Time,
) (*Booking, error) {
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	window, err := NewTimeWindow(start, end)
	if err != nil {
		return nil, err
	}
	// "now" is read once per call; no retroactive or immediate-start bookings.
	if !window.StartsAfter(f.Clock.Now()) {
		return nil, ErrInvalidWindow
	}

	if item.OwnerID == bookerID {
		return nil, ErrOwnBooking
	}

	return &Booking{
		id:       uuid.New(),
		itemID:   item.ID,
		bookerID: bookerID,
		window:   window,
		status:   StatusWaiting,
	}, nil
}
