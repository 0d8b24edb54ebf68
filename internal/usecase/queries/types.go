package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for the read side). BookingView is the denormalized
// projection exposed to callers: identifiers plus display names, never
// persisted as such.

type ItemRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingView struct {
	ID     uuid.UUID `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   ItemRef   `json:"item"`
	Booker UserRef   `json:"booker"`

	// Owner of the booked item, carried for visibility checks only.
	ItemOwnerID uuid.UUID `json:"-"`
}

// BookingShortView is the abbreviated form attached to owner item views.
type BookingShortView struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// AvailabilitySummary holds the most recent finished and nearest upcoming
// booking of an item. Either side may be absent.
type AvailabilitySummary struct {
	Last *BookingShortView
	Next *BookingShortView
}

type ItemView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`

	OwnerID uuid.UUID `json:"-"`
}

type ItemDetailsView struct {
	ItemView
	Comments []*CommentView `json:"comments"`

	// Present only on owner-facing views; omitted entirely otherwise.
	LastBooking *BookingShortView `json:"lastBooking,omitempty"`
	NextBooking *BookingShortView `json:"nextBooking,omitempty"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
