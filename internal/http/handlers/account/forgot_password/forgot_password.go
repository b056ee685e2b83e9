package forgotpassword

import (
	"errors"
	"net/http"

	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/services"
	"blog/internal/core/services/captcha"
	service "blog/internal/core/services/forgot_password"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"
)

const MSG_INVALID_CAPTCHA = "Please confirm that you are not a robot."

type Handler struct {
	renderer *response.Renderer
	service  services.Service[service.Input, service.Result]
}

func New(
	renderer *response.Renderer,
	service services.Service[service.Input, service.Result],
) *Handler {
	if renderer == nil {
		panic(e.NewNilArgumentError("renderer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{renderer: renderer, service: service}
}

type Form struct {
	Email string
}

func (h *Handler) Get(rw http.ResponseWriter, r *http.Request) {
	h.render(rw, r, views.Page{Form: Form{}}, http.StatusOK)
}

// Post renders the same page whether the email is empty, unknown, rate limited or
// the link was sent. Only a failed captcha is reported back.
func (h *Handler) Post(rw http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	page := views.Page{Form: Form{Email: email}}

	_, err := h.service.Run(r.Context(), service.Input{Email: c.NewEmail(email)})
	if errors.Is(err, captcha.ErrInvalidCaptcha) {
		page.FormError = MSG_INVALID_CAPTCHA
		h.render(rw, r, page, http.StatusUnprocessableEntity)
		return
	}

	page.Data = true
	h.render(rw, r, page, http.StatusOK)
}

func (h *Handler) render(rw http.ResponseWriter, r *http.Request, page views.Page, status int) {
	page.Title = "Forgot password"
	h.renderer.Render(rw, r, views.PageForgotPassword, page, status)
}
