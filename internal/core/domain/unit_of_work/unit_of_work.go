package uow

import (
	"context"

	"blog/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	ActionTokens() user.ActionTokenRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
