package login

import (
	"context"
	"errors"

	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	ratelimiter "blog/internal/core/domain/rate_limiter"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
)

type Input struct {
	Email      c.Email
	Password   user.RawPassword
	Persistent bool
}

func (i Input) GetRateLimitKey() string {
	return ratelimiter.Key("log-in", string(i.Email))
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	sessionManager user.SessionManager
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	sessionManager user.SessionManager,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionManager == nil {
		panic(e.NewNilArgumentError("sessionManager"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		sessionManager: sessionManager,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	if !u.IsEmailConfirmed() {
		s.log.Info(ctx, "User with unconfirmed email tried to log in.", logging.Entry("userId", u.ID))
		return result, user.ErrEmailIsNotConfirmed
	}

	err = s.sessionManager.PasswordSignIn(ctx, u, input.Password, input.Persistent)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidCredentials) {
		s.log.Info(ctx, "Invalid password.", logging.Entry("userId", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not sign in user.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "User successfully authenticated, session started.", logging.Entry("userId", u.ID))
	return Result{User: u}, nil
}
