//go:build unit || e2e

package builder

import (
	"time"

	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder fabricates booking fixtures around a fixed "now" so tests
// stay deterministic. Defaults describe a WAITING booking one hour out.
type BookingBuilder struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	ItemName   string
	OwnerID    uuid.UUID
	BookerID   uuid.UUID
	BookerName string
	Start      time.Time
	End        time.Time
	Status     string
}

func NewBookingBuilder(now time.Time) *BookingBuilder {
	return &BookingBuilder{
		ID:         uuid.New(),
		ItemID:     uuid.New(),
		ItemName:   "Cordless Drill",
		OwnerID:    uuid.New(),
		BookerID:   uuid.New(),
		BookerName: "Booker",
		Start:      now.Add(time.Hour),
		End:        now.Add(2 * time.Hour),
		Status:     "WAITING",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID,
		Start:       b.Start,
		End:         b.End,
		Status:      b.Status,
		Item:        queries.ItemRef{ID: b.ItemID, Name: b.ItemName},
		Booker:      queries.UserRef{ID: b.BookerID, Name: b.BookerName},
		ItemOwnerID: b.OwnerID,
	}
}

func (b *BookingBuilder) BuildSnapshot() *commands.BookingSnapshot {
	return &commands.BookingSnapshot{
		ID:          b.ID,
		ItemID:      b.ItemID,
		ItemOwnerID: b.OwnerID,
		BookerID:    b.BookerID,
		Start:       b.Start,
		End:         b.End,
		Status:      statusOf(b.Status),
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}
