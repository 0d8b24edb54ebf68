package queries

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"

	"github.com/google/uuid"
)

// Role selects which side of a booking the subject is on when listing.
type Role string

const (
	RoleBooker Role = "BOOKER"
	RoleOwner  Role = "OWNER"
)

// BookingReadStore returns denormalized views ordered by start descending
// with a stable tie-break, so bucket filtering never has to re-sort.
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByBooker(ctx context.Context, bookerID uuid.UUID) ([]*BookingView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]*BookingView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindAll(ctx context.Context) ([]*UserView, error)
}

type BookingQueries interface {
	// GetByID enforces the visibility rule: only the booker or the item
	// owner may see a booking; everyone else gets resource-not-found.
	GetByID(ctx context.Context, requesterID, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses visibility; used for read-after-write inside
	// the command side.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, subjectID uuid.UUID, role Role, bucket booking.Bucket) ([]*BookingView, error)
	// Summarize derives the last finished and next upcoming booking of an
	// item against the given instant.
	Summarize(ctx context.Context, itemID uuid.UUID, now time.Time) (AvailabilitySummary, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	users    UserReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, users UserReadStore, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, users: users, clock: clock}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, requesterID, id uuid.UUID) (*BookingView, error) {
	if _, err := q.users.FindByID(ctx, requesterID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrIdentityNotAuthorized)
		}
		return nil, errs.Wrap(err, "failed to resolve requester")
	}

	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	if requesterID != view.Booker.ID && requesterID != view.ItemOwnerID {
		// Reported identically to nonexistence so third parties cannot
		// probe for bookings.
		return nil, errs.Mark(errs.Newf("booking not found: id=%s", id), errs.ErrResourceNotFound)
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, subjectID uuid.UUID, role Role, bucket booking.Bucket) ([]*BookingView, error) {
	// The subject must resolve even when the resulting list is empty.
	if _, err := q.users.FindByID(ctx, subjectID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrIdentityNotAuthorized)
		}
		return nil, errs.Wrap(err, "failed to resolve subject")
	}

	var (
		views []*BookingView
		err   error
	)
	switch role {
	case RoleOwner:
		views, err = q.bookings.FindByOwner(ctx, subjectID)
	default:
		views, err = q.bookings.FindByBooker(ctx, subjectID)
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings")
	}

	now := q.clock.Now()
	filtered := make([]*BookingView, 0, len(views))
	for _, v := range views {
		if inBucket(v, bucket, now) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// inBucket is the single predicate table shared by both listing roles.
func inBucket(v *BookingView, bucket booking.Bucket, now time.Time) bool {
	switch bucket {
	case booking.BucketAll:
		return true
	case booking.BucketCurrent:
		return !v.Start.After(now) && !v.End.Before(now)
	case booking.BucketPast:
		return v.End.Before(now)
	case booking.BucketFuture:
		return v.Start.After(now)
	case booking.BucketWaiting:
		return v.Status == booking.StatusWaiting.String()
	case booking.BucketRejected:
		return v.Status == booking.StatusRejected.String()
	default:
		return false
	}
}

func (q *bookingQueriesImpl) Summarize(ctx context.Context, itemID uuid.UUID, now time.Time) (AvailabilitySummary, error) {
	views, err := q.bookings.FindByItem(ctx, itemID)
	if err != nil {
		return AvailabilitySummary{}, errs.Wrap(err, "failed to load item bookings")
	}
	return summarize(views, now), nil
}

// summarize picks last = greatest end among finished bookings (end <= now)
// and next = smallest start among upcoming ones (start > now). Ties break
// deterministically by smallest id.
func summarize(views []*BookingView, now time.Time) AvailabilitySummary {
	var sum AvailabilitySummary
	for _, v := range views {
		if !v.End.After(now) {
			if sum.Last == nil || v.End.After(sum.Last.End) ||
				(v.End.Equal(sum.Last.End) && v.ID.String() < sum.Last.ID.String()) {
				sum.Last = toShortView(v)
			}
		}
		if v.Start.After(now) {
			if sum.Next == nil || v.Start.Before(sum.Next.Start) ||
				(v.Start.Equal(sum.Next.Start) && v.ID.String() < sum.Next.ID.String()) {
				sum.Next = toShortView(v)
			}
		}
	}
	return sum
}

func toShortView(v *BookingView) *BookingShortView {
	return &BookingShortView{
		ID:       v.ID,
		BookerID: v.Booker.ID,
		Start:    v.Start,
		End:      v.End,
	}
}
