//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/builder"
	queriesmock "shareit/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type bookingQueriesFixture struct {
	bookings *queriesmock.MockBookingReadStore
	users    *queriesmock.MockUserReadStore
	sut      queries.BookingQueries
}

func newBookingQueriesFixture(t *testing.T) *bookingQueriesFixture {
	ctrl := gomock.NewController(t)
	f := &bookingQueriesFixture{
		bookings: queriesmock.NewMockBookingReadStore(ctrl),
		users:    queriesmock.NewMockUserReadStore(ctrl),
	}
	f.sut = queries.NewBookingQueries(f.bookings, f.users, clock.NewMockClock(fixedNow))
	return f
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, errs.New("no rows"), infra.KindNotFound)
}

func TestBookingQueriesGetByID(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder(fixedNow)
	view := b.BuildView()

	t.Run("booker sees the booking", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		f.users.EXPECT().FindByID(ctx, b.BookerID).Return(&queries.UserView{ID: b.BookerID}, nil)
		f.bookings.EXPECT().FindByID(ctx, b.ID).Return(view, nil)

		actual, err := f.sut.GetByID(ctx, b.BookerID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, actual.ID)
	})

	t.Run("item owner sees the booking", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		f.users.EXPECT().FindByID(ctx, b.OwnerID).Return(&queries.UserView{ID: b.OwnerID}, nil)
		f.bookings.EXPECT().FindByID(ctx, b.ID).Return(view, nil)

		_, err := f.sut.GetByID(ctx, b.OwnerID, b.ID)
		require.NoError(t, err)
	})

	t.Run("third party sees not-found", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		stranger := uuid.New()
		f.users.EXPECT().FindByID(ctx, stranger).Return(&queries.UserView{ID: stranger}, nil)
		f.bookings.EXPECT().FindByID(ctx, b.ID).Return(view, nil)

		_, err := f.sut.GetByID(ctx, stranger, b.ID)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("unknown requester is not authorized", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		stranger := uuid.New()
		f.users.EXPECT().FindByID(ctx, stranger).Return(nil, notFoundErr("user not found"))

		_, err := f.sut.GetByID(ctx, stranger, b.ID)
		require.ErrorIs(t, err, errs.ErrIdentityNotAuthorized)
	})

	t.Run("missing booking is not-found", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		f.users.EXPECT().FindByID(ctx, b.BookerID).Return(&queries.UserView{ID: b.BookerID}, nil)
		f.bookings.EXPECT().FindByID(ctx, b.ID).Return(nil, notFoundErr("booking not found"))

		_, err := f.sut.GetByID(ctx, b.BookerID, b.ID)
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})
}

// bucketFixtures builds one booking per relevant temporal/status shape,
// all belonging to the same booker.
func bucketFixtures(bookerID uuid.UUID) map[string]*queries.BookingView {
	mk := func(start, end time.Time, status string) *queries.BookingView {
		b := builder.NewBookingBuilder(fixedNow)
		b.BookerID = bookerID
		b.Start = start
		b.End = end
		b.Status = status
		return b.BuildView()
	}
	return map[string]*queries.BookingView{
		"past approved":    mk(fixedNow.Add(-3*time.Hour), fixedNow.Add(-2*time.Hour), "APPROVED"),
		"current approved": mk(fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour), "APPROVED"),
		"future waiting":   mk(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour), "WAITING"),
		"future rejected":  mk(fixedNow.Add(2*time.Hour), fixedNow.Add(3*time.Hour), "REJECTED"),
	}
}

func TestBookingQueriesList(t *testing.T) {
	ctx := context.Background()
	bookerID := uuid.New()
	fixtures := bucketFixtures(bookerID)
	all := []*queries.BookingView{
		fixtures["future rejected"],
		fixtures["future waiting"],
		fixtures["current approved"],
		fixtures["past approved"],
	}

	expect := map[booking.Bucket][]string{
		booking.BucketAll:      {"future rejected", "future waiting", "current approved", "past approved"},
		booking.BucketCurrent:  {"current approved"},
		booking.BucketPast:     {"past approved"},
		booking.BucketFuture:   {"future rejected", "future waiting"},
		booking.BucketWaiting:  {"future waiting"},
		booking.BucketRejected: {"future rejected"},
	}

	for bucket, names := range expect {
		t.Run("bucket "+string(bucket), func(t *testing.T) {
			f := newBookingQueriesFixture(t)
			f.users.EXPECT().FindByID(ctx, bookerID).Return(&queries.UserView{ID: bookerID}, nil)
			f.bookings.EXPECT().FindByBooker(ctx, bookerID).Return(all, nil)

			actual, err := f.sut.List(ctx, bookerID, queries.RoleBooker, bucket)
			require.NoError(t, err)

			expected := make([]*queries.BookingView, len(names))
			for i, n := range names {
				expected[i] = fixtures[n]
			}
			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Errorf("bucket %s mismatch (-want +got):\n%s", bucket, diff)
			}
		})
	}

	t.Run("CURRENT, PAST and FUTURE partition ALL", func(t *testing.T) {
		total := 0
		for _, bucket := range []booking.Bucket{booking.BucketCurrent, booking.BucketPast, booking.BucketFuture} {
			total += len(expect[bucket])
		}
		assert.Equal(t, len(expect[booking.BucketAll]), total)
	})

	t.Run("owner role queries by owner", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		ownerID := uuid.New()
		f.users.EXPECT().FindByID(ctx, ownerID).Return(&queries.UserView{ID: ownerID}, nil)
		f.bookings.EXPECT().FindByOwner(ctx, ownerID).Return(all, nil)

		actual, err := f.sut.List(ctx, ownerID, queries.RoleOwner, booking.BucketAll)
		require.NoError(t, err)
		assert.Len(t, actual, len(all))
	})

	t.Run("unknown subject is not authorized even for an empty list", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		stranger := uuid.New()
		f.users.EXPECT().FindByID(ctx, stranger).Return(nil, notFoundErr("user not found"))

		_, err := f.sut.List(ctx, stranger, queries.RoleBooker, booking.BucketAll)
		require.ErrorIs(t, err, errs.ErrIdentityNotAuthorized)
	})

	t.Run("empty result stays empty, not nil error", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		f.users.EXPECT().FindByID(ctx, bookerID).Return(&queries.UserView{ID: bookerID}, nil)
		f.bookings.EXPECT().FindByBooker(ctx, bookerID).Return(nil, nil)

		actual, err := f.sut.List(ctx, bookerID, queries.RoleBooker, booking.BucketAll)
		require.NoError(t, err)
		assert.Empty(t, actual)
	})
}

func TestBookingQueriesSummarize(t *testing.T) {
	ctx := context.Background()
	itemID := uuid.New()

	mk := func(start, end time.Time) *queries.BookingView {
		b := builder.NewBookingBuilder(fixedNow)
		b.ItemID = itemID
		b.Start = start
		b.End = end
		b.Status = "APPROVED"
		return b.BuildView()
	}

	t.Run("last is the greatest finished end, next the smallest future start", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		e1 := mk(fixedNow.Add(-5*time.Hour), fixedNow.Add(-4*time.Hour))
		e2 := mk(fixedNow.Add(-3*time.Hour), fixedNow.Add(-2*time.Hour))
		n1 := mk(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour))
		n2 := mk(fixedNow.Add(3*time.Hour), fixedNow.Add(4*time.Hour))
		f.bookings.EXPECT().FindByItem(ctx, itemID).Return([]*queries.BookingView{n2, n1, e2, e1}, nil)

		sum, err := f.sut.Summarize(ctx, itemID, fixedNow)
		require.NoError(t, err)
		require.NotNil(t, sum.Last)
		require.NotNil(t, sum.Next)
		assert.Equal(t, e2.ID, sum.Last.ID)
		assert.Equal(t, n1.ID, sum.Next.ID)
	})

	t.Run("booking ending exactly now counts as finished", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		edge := mk(fixedNow.Add(-time.Hour), fixedNow)
		f.bookings.EXPECT().FindByItem(ctx, itemID).Return([]*queries.BookingView{edge}, nil)

		sum, err := f.sut.Summarize(ctx, itemID, fixedNow)
		require.NoError(t, err)
		require.NotNil(t, sum.Last)
		assert.Equal(t, edge.ID, sum.Last.ID)
		assert.Nil(t, sum.Next)
	})

	t.Run("booking starting exactly now is not upcoming", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		edge := mk(fixedNow, fixedNow.Add(time.Hour))
		f.bookings.EXPECT().FindByItem(ctx, itemID).Return([]*queries.BookingView{edge}, nil)

		sum, err := f.sut.Summarize(ctx, itemID, fixedNow)
		require.NoError(t, err)
		assert.Nil(t, sum.Next)
		assert.Nil(t, sum.Last)
	})

	t.Run("ties break toward the smallest id", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		a := mk(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour))
		b := mk(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour))
		f.bookings.EXPECT().FindByItem(ctx, itemID).Return([]*queries.BookingView{a, b}, nil)

		sum, err := f.sut.Summarize(ctx, itemID, fixedNow)
		require.NoError(t, err)
		require.NotNil(t, sum.Next)

		want := a.ID
		if b.ID.String() < a.ID.String() {
			want = b.ID
		}
		assert.Equal(t, want, sum.Next.ID)
	})

	t.Run("no bookings yields an empty summary", func(t *testing.T) {
		f := newBookingQueriesFixture(t)
		f.bookings.EXPECT().FindByItem(ctx, itemID).Return(nil, nil)

		sum, err := f.sut.Summarize(ctx, itemID, fixedNow)
		require.NoError(t, err)
		assert.Nil(t, sum.Last)
		assert.Nil(t, sum.Next)
	})
}
