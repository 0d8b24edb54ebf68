package response

import (
	"time"

	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
}

type ItemDetailsResponse struct {
	ItemResponse
	Comments []*CommentResponse `json:"comments"`

	// Only owner-facing views carry the availability summary; the fields
	// are absent from everyone else's payloads.
	LastBooking *BookingShortResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingShortResponse `json:"nextBooking,omitempty"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
	}
}

func FromItemViews(views []*queries.ItemView) []*ItemResponse {
	result := make([]*ItemResponse, len(views))
	for i, v := range views {
		result[i] = FromItemView(v)
	}
	return result
}

func FromItemDetailsView(v *queries.ItemDetailsView) *ItemDetailsResponse {
	comments := make([]*CommentResponse, len(v.Comments))
	for i, c := range v.Comments {
		comments[i] = FromCommentView(c)
	}
	return &ItemDetailsResponse{
		ItemResponse: *FromItemView(&v.ItemView),
		Comments:     comments,
		LastBooking:  fromBookingShortView(v.LastBooking),
		NextBooking:  fromBookingShortView(v.NextBooking),
	}
}

func FromItemDetailsViews(views []*queries.ItemDetailsView) []*ItemDetailsResponse {
	result := make([]*ItemDetailsResponse, len(views))
	for i, v := range views {
		result[i] = FromItemDetailsView(v)
	}
	return result
}

func FromCommentView(v *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         v.ID,
		Text:       v.Text,
		AuthorName: v.AuthorName,
		Created:    v.Created,
	}
}
