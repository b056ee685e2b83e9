package register

import (
	"context"
	"errors"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
)

type serviceWithConfirmationSending struct {
	log    logging.Logger
	links  user.ActionLinkBuilder
	sender user.NotificationSender
	inner  services.Service[Input, Result]
}

// NewWithConfirmationSending emails the confirmation link once the account has been created.
func NewWithConfirmationSending(
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
	return &serviceWithConfirmationSending{
		log:    log,
		links:  links,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithConfirmationSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending email confirmation link.", logging.Entry("err", err))
		return result, err
	}

	err = s.sender.Send(ctx, user.Notification{
		Purpose: user.PurposeConfirmEmail,
		To:      result.User.Email,
		Name:    result.User.DisplayName(),
		ActionURL: s.links.BuildActionURL(
			user.PurposeConfirmEmail,
			result.User.ID,
			result.ConfirmationToken,
		),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send email confirmation link.",
			logging.Entry("userId", result.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Email confirmation link has been sent to the user.",
		logging.Entry("userId", result.User.ID),
	)
	return result, nil
}
