package errs

import "errors"

// The caller-visible failure kinds. Every usecase error is marked with
// exactly one of these so handlers can map them without string matching.
var (
	// ErrIdentityNotAuthorized: the acting identifier does not resolve to a
	// known user. The identity arrives as a plain header value, so an
	// unknown actor is a permission failure rather than a not-found.
	ErrIdentityNotAuthorized = errors.New("identity not authorized")

	// ErrResourceNotFound covers both true absence and visibility or
	// ownership mismatches over an existing record. The two cases are
	// intentionally indistinguishable to the caller.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidState: a domain invariant is violated (unavailable item,
	// malformed window, self-booking, re-deciding, premature comment).
	ErrInvalidState = errors.New("invalid state")

	// ErrEmailConflict: the email is already used by another user.
	ErrEmailConflict = errors.New("email already in use")
)
