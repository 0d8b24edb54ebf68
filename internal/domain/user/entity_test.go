//go:build unit

package user_test

import (
	"testing"

	"shareit/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		u, err := user.NewUser("Alice", "alice@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, u.ID())
		assert.Equal(t, "Alice", u.Name())
		assert.Equal(t, "alice@example.com", u.Email())
	})

	cases := []struct {
		name  string
		uname string
		email string
		errIs error
	}{
		{name: "blank name", uname: "   ", email: "a@b.com", errIs: user.ErrNameRequired},
		{name: "empty email", uname: "Alice", email: "", errIs: user.ErrInvalidEmail},
		{name: "email without at", uname: "Alice", email: "alice.example.com", errIs: user.ErrInvalidEmail},
		{name: "email with leading at", uname: "Alice", email: "@example.com", errIs: user.ErrInvalidEmail},
		{name: "email with trailing at", uname: "Alice", email: "alice@", errIs: user.ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewUser(tc.uname, tc.email)
			require.ErrorIs(t, err, tc.errIs)
		})
	}
}
