package confirmemail

import (
	"context"
	"errors"
	"time"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	uow "blog/internal/core/domain/unit_of_work"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
)

type Input struct {
	UserID user.ID
	Token  user.ActionToken
}

type Result struct {
	User user.User
}

type service struct {
	log          logging.Logger
	unitOfWork   uow.UnitOfWork
	tokenService user.TokenService
	now          func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	tokenService user.TokenService,
	now func() time.Time,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:          log,
		unitOfWork:   unitOfWork,
		tokenService: tokenService,
		now:          now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.UserID == 0 || input.Token == "" {
		return result, user.ErrInvalidActionToken
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

	u, err := uow.Users().GetByID(ctx, input.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User for email confirmation not found.", logging.Entry("userId", input.UserID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by ID.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = s.tokenService.Redeem(ctx, uow.ActionTokens(), u, user.PurposeConfirmEmail, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidActionToken) {
		s.log.Info(ctx, "Invalid email confirmation token.", logging.Entry("userId", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not redeem email confirmation token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	confirmedUser, err := uow.Users().ConfirmEmail(ctx, u.ID, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not confirm user email.",
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

	s.log.Info(ctx, "User email has been confirmed.", logging.Entry("userId", u.ID))
	return Result{User: confirmedUser}, nil
}
