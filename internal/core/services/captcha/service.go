package captcha

import (
	"context"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/services"
)

type contextCaptchaToken string

const CONTEXT_CAPTCHA_TOKEN_KEY = contextCaptchaToken("captchaToken")

func WithCaptchaToken(ctx context.Context, token CaptchaToken) context.Context {
	return context.WithValue(ctx, CONTEXT_CAPTCHA_TOKEN_KEY, token)
}

type service[T any, S any] struct {
	validator CaptchaValidator
	inner     services.Service[T, S]
}

// WithCaptcha runs inner only if the captcha token stored in the context is valid.
func WithCaptcha[T any, S any](
	validator CaptchaValidator,
	inner services.Service[T, S],
) services.Service[T, S] {
	if validator == nil {
		panic(e.NewNilArgumentError("validator"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		validator: validator,
		inner:     inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	token, _ := ctx.Value(CONTEXT_CAPTCHA_TOKEN_KEY).(CaptchaToken)
	if !s.validator.ValidateCaptchaToken(ctx, token) {
		return result, ErrInvalidCaptcha
	}
	return s.inner.Run(ctx, input)
}
