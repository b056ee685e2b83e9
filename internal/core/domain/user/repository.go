package user

import (
	"context"
	"time"

	c "blog/internal/core/domain/common"
)

type CreateUserInput struct {
	Email        c.Email
	Username     Username
	FirstName    string
	LastName     string
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// ConfirmEmail keeps the first confirmation time if the email is already confirmed.
	ConfirmEmail(ctx context.Context, id ID, at time.Time) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}
