package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNameRequired = errors.New("user name must not be blank")
	ErrInvalidEmail = errors.New("invalid email")
)

type User struct {
	id    uuid.UUID
	name  string
	email string
}

func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if !isPlausibleEmail(email) {
		return nil, ErrInvalidEmail
	}
	return &User{
		id:    uuid.New(),
		name:  name,
		email: email,
	}, nil
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }

func isPlausibleEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
