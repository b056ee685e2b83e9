package captcha

import "context"

// AllowAlwaysCaptchaValidator is used in test mode, where there is no reCAPTCHA widget.
type AllowAlwaysCaptchaValidator struct{}

func NewAllowAlwaysCaptchaValidator() *AllowAlwaysCaptchaValidator {
	return &AllowAlwaysCaptchaValidator{}
}

func (v *AllowAlwaysCaptchaValidator) ValidateCaptchaToken(ctx context.Context, token CaptchaToken) bool {
	return true
}

type FakeCaptchaValidator struct {
	IsValid bool
	Checked []CaptchaToken
}

func NewFakeCaptchaValidator(isValid bool) *FakeCaptchaValidator {
	return &FakeCaptchaValidator{IsValid: isValid}
}

func (v *FakeCaptchaValidator) ValidateCaptchaToken(ctx context.Context, token CaptchaToken) bool {
	v.Checked = append(v.Checked, token)
	return v.IsValid
}
