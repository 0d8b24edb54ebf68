//go:build unit

package booking_test

import (
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type factoryCase struct {
	name   string
	mutate func(*factoryInput)
	errIs  error
}

type factoryInput struct {
	item     booking.ItemSpec
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
}

func validInput(now time.Time) factoryInput {
	return factoryInput{
		item: booking.ItemSpec{
			ID:        uuid.New(),
			OwnerID:   uuid.New(),
			Available: true,
		},
		bookerID: uuid.New(),
		start:    now.Add(time.Hour),
		end:      now.Add(2 * time.Hour),
	}
}

func TestFactoryNewBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	factory := booking.NewFactory(clock.NewMockClock(now))

	t.Run("basic success case", func(t *testing.T) {
		in := validInput(now)
		actual, err := factory.NewBooking(in.item, in.bookerID, in.start, in.end)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, in.item.ID, actual.ItemID())
		assert.Equal(t, in.bookerID, actual.BookerID())
		assert.Equal(t, booking.StatusWaiting, actual.Status())
		assert.Equal(t, in.start, actual.Window().Start())
		assert.Equal(t, in.end, actual.Window().End())
	})

	t.Run("validation order and failures", func(t *testing.T) {
		cases := []factoryCase{
			{
				name:   "unavailable item",
				mutate: func(in *factoryInput) { in.item.Available = false },
				errIs:  booking.ErrItemUnavailable,
			},
			{
				name: "unavailable item wins over bad window",
				mutate: func(in *factoryInput) {
					in.item.Available = false
					in.end = in.start
				},
				errIs: booking.ErrItemUnavailable,
			},
			{
				name:   "missing start",
				mutate: func(in *factoryInput) { in.start = time.Time{} },
				errIs:  booking.ErrInvalidWindow,
			},
			{
				name:   "missing end",
				mutate: func(in *factoryInput) { in.end = time.Time{} },
				errIs:  booking.ErrInvalidWindow,
			},
			{
				name:   "end equals start",
				mutate: func(in *factoryInput) { in.end = in.start },
				errIs:  booking.ErrInvalidWindow,
			},
			{
				name:   "end before start",
				mutate: func(in *factoryInput) { in.end = in.start.Add(-time.Minute) },
				errIs:  booking.ErrInvalidWindow,
			},
			{
				name: "start exactly now",
				mutate: func(in *factoryInput) {
					in.start = now
					in.end = now.Add(time.Hour)
				},
				errIs: booking.ErrInvalidWindow,
			},
			{
				name: "start in the past",
				mutate: func(in *factoryInput) {
					in.start = now.Add(-time.Hour)
					in.end = now.Add(time.Hour)
				},
				errIs: booking.ErrInvalidWindow,
			},
			{
				name:   "owner booking own item",
				mutate: func(in *factoryInput) { in.bookerID = in.item.OwnerID },
				errIs:  booking.ErrOwnBooking,
			},
			{
				name: "bad window wins over self-booking",
				mutate: func(in *factoryInput) {
					in.bookerID = in.item.OwnerID
					in.end = in.start
				},
				errIs: booking.ErrInvalidWindow,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := validInput(now)
				tc.mutate(&in)

				actual, err := factory.NewBooking(in.item, in.bookerID, in.start, in.end)
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
			})
		}
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusWaiting.IsValid())
	assert.True(t, booking.StatusApproved.IsValid())
	assert.True(t, booking.StatusRejected.IsValid())
	assert.False(t, booking.Status("CANCELED").IsValid())

	assert.False(t, booking.StatusWaiting.IsDecided())
	assert.True(t, booking.StatusApproved.IsDecided())
	assert.True(t, booking.StatusRejected.IsDecided())
}

func TestParseBucket(t *testing.T) {
	t.Run("empty defaults to ALL", func(t *testing.T) {
		b, err := booking.ParseBucket("")
		require.NoError(t, err)
		assert.Equal(t, booking.BucketAll, b)
	})

	t.Run("known buckets", func(t *testing.T) {
		for _, raw := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
			b, err := booking.ParseBucket(raw)
			require.NoError(t, err)
			assert.Equal(t, booking.Bucket(raw), b)
		}
	})

	t.Run("unknown value rejected", func(t *testing.T) {
		_, err := booking.ParseBucket("SOMETIME")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SOMETIME")
	})

	t.Run("lowercase is not accepted", func(t *testing.T) {
		_, err := booking.ParseBucket("past")
		require.Error(t, err)
	})
}

func TestTimeWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	w, err := booking.NewTimeWindow(start, start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, start, w.Start())
	assert.Equal(t, start.Add(90*time.Minute), w.End())
	assert.True(t, w.StartsAfter(start.Add(-time.Second)))
	assert.False(t, w.StartsAfter(start))
}
