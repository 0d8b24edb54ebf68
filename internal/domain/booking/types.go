package booking

import "shareit/internal/pkg/errs"

// Status is the approval state of a booking. The only legal transition is
// WAITING to one of APPROVED or REJECTED, and it is irreversible.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// Bucket is a query-time temporal/status filter over a user's bookings.
// It is never persisted.
type Bucket string

const (
	BucketAll      Bucket = "ALL"
	BucketCurrent  Bucket = "CURRENT"
	BucketPast     Bucket = "PAST"
	BucketFuture   Bucket = "FUTURE"
	BucketWaiting  Bucket = "WAITING"
	BucketRejected Bucket = "REJECTED"
)

// ParseBucket maps a raw query value to a Bucket. An empty value defaults
// to ALL; anything else unknown is rejected at the edge.
func ParseBucket(raw string) (Bucket, error) {
	if raw == "" {
		return BucketAll, nil
	}
	b := Bucket(raw)
	switch b {
	case BucketAll, BucketCurrent, BucketPast, BucketFuture, BucketWaiting, BucketRejected:
		return b, nil
	default:
		return "", errs.Newf("unknown state: %s", raw)
	}
}
