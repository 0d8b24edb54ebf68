//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"shareit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("marked errors match the sentinel with errors.Is", func(t *testing.T) {
		err := errs.Mark(errs.New("item not available"), errs.ErrInvalidState)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.NotErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("the mark survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(
			errs.Mark(errs.New("no rows"), errs.ErrResourceNotFound),
			"failed to find booking",
		)

		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("remarking keeps every sentinel reachable", func(t *testing.T) {
		err := errs.Mark(
			errs.Mark(errs.New("duplicate key"), errs.ErrEmailConflict),
			errs.ErrInvalidState,
		)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		require.ErrorIs(t, err, errs.ErrEmailConflict)
	})

	t.Run("the message stays the cause's own", func(t *testing.T) {
		err := errs.Mark(errs.New("booking already decided"), errs.ErrInvalidState)

		assert.Equal(t, "booking already decided", err.Error())
	})

	t.Run("marking nil yields the sentinel itself", func(t *testing.T) {
		err := errs.Mark(nil, errs.ErrIdentityNotAuthorized)

		assert.True(t, errors.Is(err, errs.ErrIdentityNotAuthorized))
	})
}

func TestExtractStackLines(t *testing.T) {
	err := errs.Mark(errs.New("boom"), errs.ErrInvalidState)

	lines := errs.ExtractStackLines(err, 5)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "boom")
	assert.LessOrEqual(t, len(lines), 5)
}
