package forgotpassword

import (
	"context"
	"errors"

	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	ratelimiter "blog/internal/core/domain/rate_limiter"
	uow "blog/internal/core/domain/unit_of_work"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return ratelimiter.Key("forgot-password", string(i.Email))
}

type Result struct {
	User       user.User
	ResetToken user.ActionToken
}

type service struct {
	log          logging.Logger
	unitOfWork   uow.UnitOfWork
	tokenService user.TokenService
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	tokenService user.TokenService,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if tokenService == nil {
		panic(e.NewNilArgumentError("tokenService"))
	}
	return &service{
		log:          log,
		unitOfWork:   unitOfWork,
		tokenService: tokenService,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Email.IsZero() {
		return result, user.ErrUserDoesNotExist
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
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

	token, err := s.tokenService.Issue(ctx, uow.ActionTokens(), u, user.PurposeResetPassword)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue password reset token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Password reset token has been issued.", logging.Entry("userId", u.ID))
	return Result{User: u, ResetToken: token}, nil
}
