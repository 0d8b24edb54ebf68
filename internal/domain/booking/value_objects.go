package booking

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("invalid booking window")

// TimeWindow is the half-open interval [start, end) a booking claims.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

// NewTimeWindow requires both bounds present and end strictly after start.
// The start-in-the-future rule depends on a clock and is enforced by the
// Factory, not here.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() || end.IsZero() {
		return TimeWindow{}, ErrInvalidWindow
	}
	if !end.After(start) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{start: start, end: end}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

// StartsAfter reports whether the window begins strictly after the instant.
func (w TimeWindow) StartsAfter(t time.Time) bool {
	return w.start.After(t)
}
