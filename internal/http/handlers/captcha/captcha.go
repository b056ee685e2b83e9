package captcha

import (
	"net/http"

	"blog/internal/core/services/captcha"
)

const (
	CAPTCHA_FORM_FIELD = "g-recaptcha-response"
	CAPTCHA_HEADER     = "X-Captcha-Token"
)

// SetCaptchaTokenToContext takes the token from the reCAPTCHA widget field, or from the header for scripted clients.
func SetCaptchaTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(CAPTCHA_HEADER)
		if token == "" && r.Method == http.MethodPost {
			token = r.PostFormValue(CAPTCHA_FORM_FIELD)
		}
		if token != "" {
			r = r.WithContext(captcha.WithCaptchaToken(r.Context(), captcha.CaptchaToken(token)))
		}
		next.ServeHTTP(w, r)
	})
}
