package user

import (
	"fmt"
	"strings"
	"time"

	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Username string

type User struct {
	ID               ID
	Email            c.Email
	Username         Username
	FirstName        string
	LastName         string
	PasswordHash     PasswordHash
	CreatedAt        time.Time
	EmailConfirmedAt c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Email.IsZero() {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.Username == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}

func (u *User) IsEmailConfirmed() bool {
	return u.EmailConfirmedAt.IsPresent
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is what notifications and pages greet the user with.
func (u *User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return string(u.Username)
}
