package queries

import (
	"context"
	"strings"

	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"

	"github.com/google/uuid"
)

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	// Search matches available items whose name or description contains the
	// text, case-insensitively.
	Search(ctx context.Context, text string) ([]*ItemView, error)
}

type CommentReadStore interface {
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]*CommentView, error)
}

type ItemQueries interface {
	GetByID(ctx context.Context, requesterID, itemID uuid.UUID) (*ItemDetailsView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemDetailsView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	items    ItemReadStore
	comments CommentReadStore
	users    UserReadStore
	bookings BookingQueries
	clock    clock.Clock
}

func NewItemQueries(
	items ItemReadStore,
	comments CommentReadStore,
	users UserReadStore,
	bookings BookingQueries,
	clock clock.Clock,
) ItemQueries {
	return &itemQueriesImpl{
		items:    items,
		comments: comments,
		users:    users,
		bookings: bookings,
		clock:    clock,
	}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, requesterID, itemID uuid.UUID) (*ItemDetailsView, error) {
	if _, err := q.users.FindByID(ctx, requesterID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to resolve requester")
	}

	itemView, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	details, err := q.buildDetails(ctx, itemView, requesterID == itemView.OwnerID)
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemDetailsView, error) {
	if _, err := q.users.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to resolve owner")
	}

	itemViews, err := q.items.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list owner items")
	}

	result := make([]*ItemDetailsView, len(itemViews))
	for i, itemView := range itemViews {
		details, err := q.buildDetails(ctx, itemView, true)
		if err != nil {
			return nil, err
		}
		result[i] = details
	}
	return result, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}
	views, err := q.items.Search(ctx, text)
	if err != nil {
		return nil, errs.Wrap(err, "failed to search items")
	}
	return views, nil
}

// buildDetails assembles the item projection. The availability summary is
// computed only for the owner; other requesters never pay for it and never
// see the fields.
func (q *itemQueriesImpl) buildDetails(ctx context.Context, itemView *ItemView, forOwner bool) (*ItemDetailsView, error) {
	comments, err := q.comments.FindByItem(ctx, itemView.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load item comments")
	}
	if comments == nil {
		comments = []*CommentView{}
	}

	details := &ItemDetailsView{
		ItemView: *itemView,
		Comments: comments,
	}

	if forOwner {
		sum, err := q.bookings.Summarize(ctx, itemView.ID, q.clock.Now())
		if err != nil {
			return nil, err
		}
		details.LastBooking = sum.Last
		details.NextBooking = sum.Next
	}
	return details, nil
}
