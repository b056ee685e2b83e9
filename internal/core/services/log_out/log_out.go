package logout

import (
	"context"
	"errors"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
)

type Input struct{}

type Result struct{}

type service struct {
	log            logging.Logger
	sessionManager user.SessionManager
}

func New(
	log logging.Logger,
	sessionManager user.SessionManager,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionManager == nil {
		panic(e.NewNilArgumentError("sessionManager"))
	}
	return &service{
		log:            log,
		sessionManager: sessionManager,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, isSignedIn := s.sessionManager.UserID(ctx)
	err = s.sessionManager.SignOut(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not destroy session.", logging.Entry("err", err))
		return result, err
	}
	if isSignedIn {
		s.log.Info(ctx, "User has logged out.", logging.Entry("userId", userID))
	}
	return result, nil
}
