package services

import (
	"blog/internal/app/deps"
	drl "blog/internal/core/domain/rate_limiter"
	"blog/internal/core/services"
	"blog/internal/core/services/captcha"
	confirmemail "blog/internal/core/services/confirm_email"
	forgotpassword "blog/internal/core/services/forgot_password"
	getblog "blog/internal/core/services/get_blog"
	getcategory "blog/internal/core/services/get_category"
	getcurrentuser "blog/internal/core/services/get_current_user"
	listblogs "blog/internal/core/services/list_blogs"
	login "blog/internal/core/services/log_in"
	logout "blog/internal/core/services/log_out"
	ratelimiting "blog/internal/core/services/rate_limiting"
	"blog/internal/core/services/register"
	resetpassword "blog/internal/core/services/reset_password"
)

type Services struct {
	Register       services.Service[register.Input, register.Result]
	LogIn          services.Service[login.Input, login.Result]
	LogOut         services.Service[logout.Input, logout.Result]
	ConfirmEmail   services.Service[confirmemail.Input, confirmemail.Result]
	ForgotPassword services.Service[forgotpassword.Input, forgotpassword.Result]
	ResetPassword  services.Service[resetpassword.Input, resetpassword.Result]
	GetCurrentUser services.Service[getcurrentuser.Input, getcurrentuser.Result]

	ListBlogs   services.Service[listblogs.Input, listblogs.Result]
	GetCategory services.Service[getcategory.Input, getcategory.Result]
	GetBlog     services.Service[getblog.Input, getblog.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.Register = captcha.WithCaptcha(
		deps.CaptchaValidator,
		register.NewWithConfirmationSending(
			deps.Logger,
			deps.ActionLinkBuilder,
			deps.NotificationSender,
			register.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.PasswordHasher,
				deps.TokenService,
				deps.Now,
			),
		),
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.SessionManager,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionManager,
	)
	s.ConfirmEmail = confirmemail.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.TokenService,
		deps.Now,
	)
	s.ForgotPassword = captcha.WithCaptcha(
		deps.CaptchaValidator,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 3},
			forgotpassword.NewWithResetLinkSending(
				deps.Logger,
				deps.ActionLinkBuilder,
				deps.BackgroundNotificationSender,
				forgotpassword.New(
					deps.Logger,
					deps.UnitOfWork,
					deps.TokenService,
				),
			),
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.TokenService,
		deps.PasswordHasher,
		deps.Now,
	)
	s.GetCurrentUser = getcurrentuser.New(
		deps.Logger,
		deps.SessionManager,
		deps.UserRepository,
	)

	s.ListBlogs = listblogs.New(
		deps.Logger,
		deps.BlogRepository,
		deps.CategoryRepository,
	)
	s.GetCategory = getcategory.New(
		deps.Logger,
		deps.CategoryRepository,
	)
	s.GetBlog = getblog.New(
		deps.Logger,
		deps.BlogRepository,
		deps.CategoryRepository,
	)

	return s
}
