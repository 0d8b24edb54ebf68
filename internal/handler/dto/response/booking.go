package response

import (
	"time"

	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID     uuid.UUID `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   RefDTO    `json:"item"`
	Booker RefDTO    `json:"booker"`
}

type RefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingShortResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  v.Start,
		End:    v.End,
		Status: v.Status,
		Item:   RefDTO{ID: v.Item.ID, Name: v.Item.Name},
		Booker: RefDTO{ID: v.Booker.ID, Name: v.Booker.Name},
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, v := range views {
		result[i] = FromBookingView(v)
	}
	return result
}

func fromBookingShortView(v *queries.BookingShortView) *BookingShortResponse {
	if v == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       v.ID,
		BookerID: v.BookerID,
		Start:    v.Start,
		End:      v.End,
	}
}
