package uow

import (
	"context"
	"errors"

	"blog/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository        *user.FakeUserRepository
	ActionTokenRepository *user.FakeActionTokenRepository
	WasRollbackCalled     bool
	WasCommitCalled       bool
	CommitReturnsError    bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	actionTokenRepository *user.FakeActionTokenRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:        userRepository,
		ActionTokenRepository: actionTokenRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.CommitReturnsError {
		return errors.New("could not commit")
	}
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) ActionTokens() user.ActionTokenRepository {
	return c.ActionTokenRepository
}

// FakeUnitOfWork does not isolate anything: every Begin returns the same context backed by
// in-memory repositories, so writes are visible even without Commit.
type FakeUnitOfWork struct {
	Context *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeUserRepository(),
			user.NewFakeActionTokenRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	u.Context.WasCommitCalled = false
	u.Context.WasRollbackCalled = false
	return u.Context, nil
}
