package getcurrentuser

import (
	"context"
	"errors"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
)

type Input struct{}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	sessionManager user.SessionManager
	userRepository user.UserRepository
}

// New resolves the user of the current session. Anonymous visitors get ErrUserDoesNotExist.
func New(
	log logging.Logger,
	sessionManager user.SessionManager,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionManager == nil {
		panic(e.NewNilArgumentError("sessionManager"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		sessionManager: sessionManager,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, ok := s.sessionManager.UserID(ctx)
	if !ok {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Warning(ctx, "Session refers to a missing user.", logging.Entry("userId", userID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user of the session.",
			logging.Entry("userId", userID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{User: u}, nil
}
