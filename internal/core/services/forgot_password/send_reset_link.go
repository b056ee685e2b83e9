package forgotpassword

import (
	"context"
	"errors"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
)

type serviceWithResetLinkSending struct {
	log    logging.Logger
	links  user.ActionLinkBuilder
	sender user.NotificationSender
	inner  services.Service[Input, Result]
}

func NewWithResetLinkSending(
	log logging.Logger,
	links user.ActionLinkBuilder,
	sender user.NotificationSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if links == nil {
		panic(e.NewNilArgumentError("links"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithResetLinkSending{
		log:    log,
		links:  links,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithResetLinkSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	err = s.sender.Send(ctx, user.Notification{
		Purpose: user.PurposeResetPassword,
		To:      result.User.Email,
		Name:    result.User.DisplayName(),
		ActionURL: s.links.BuildActionURL(
			user.PurposeResetPassword,
			result.User.ID,
			result.ResetToken,
		),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userId", result.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Password reset link has been handed to the sender.", logging.Entry("userId", result.User.ID))
	return result, nil
}
