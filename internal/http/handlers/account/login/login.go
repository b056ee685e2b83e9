package login

import (
	"errors"
	"net/http"
	"strings"

	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	ratelimiter "blog/internal/core/domain/rate_limiter"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
	service "blog/internal/core/services/log_in"
	"blog/internal/http/handlers/auth"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MSG_NO_ACCOUNT          = "No account has been opened with this email."
	MSG_EMAIL_NOT_CONFIRMED = "Please confirm your account via the link sent to your email."
	MSG_INVALID_CREDENTIALS = "Email or password is incorrect."
	MSG_RATE_LIMIT_EXCEEDED = "Too many login attempts. Please try again later."
)

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

type Input struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ReturnURL string `json:"returnUrl"`
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Email = strings.TrimSpace(r.PostForm.Get("email"))
	i.Password = r.PostForm.Get("password")
	i.ReturnURL = r.PostForm.Get("returnUrl")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.ReturnURL, validation.Length(0, 2048)),
	)
}

// Form is what the page echoes back. The password never is.
type Form struct {
	Email     string
	ReturnURL string
}

func (h *Handler) Get(rw http.ResponseWriter, r *http.Request) {
	h.render(rw, r, views.Page{Form: Form{ReturnURL: r.URL.Query().Get(auth.RETURN_URL_PARAM)}}, http.StatusOK)
}

func (h *Handler) Post(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromForm(r); err != nil {
		h.render(rw, r, views.Page{Form: Form{}, FormError: response.MSG_UNKNOWN_ERROR}, http.StatusBadRequest)
		return
	}
	page := views.Page{Form: Form{Email: input.Email, ReturnURL: input.ReturnURL}}
	if err := input.Validate(); err != nil {
		page.FieldErrors, _ = response.FieldErrors(err)
		h.render(rw, r, page, http.StatusUnprocessableEntity)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Email:      c.NewEmail(input.Email),
			Password:   user.RawPassword(input.Password),
			Persistent: true,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			page.FormError = MSG_RATE_LIMIT_EXCEEDED
			h.render(rw, r, page, http.StatusTooManyRequests)
		case errors.Is(err, user.ErrUserDoesNotExist):
			page.FormError = MSG_NO_ACCOUNT
			h.render(rw, r, page, http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrEmailIsNotConfirmed):
			page.FormError = MSG_EMAIL_NOT_CONFIRMED
			h.render(rw, r, page, http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrInvalidCredentials):
			page.FormError = MSG_INVALID_CREDENTIALS
			h.render(rw, r, page, http.StatusUnprocessableEntity)
		default:
			h.renderer.RenderInternalError(rw, r)
		}
		return
	}

	returnURL := "/"
	if auth.IsLocalURL(input.ReturnURL) {
		returnURL = input.ReturnURL
	}
	http.Redirect(rw, r, returnURL, http.StatusSeeOther)
}

func (h *Handler) render(rw http.ResponseWriter, r *http.Request, page views.Page, status int) {
	page.Title = "Log in"
	h.renderer.Render(rw, r, views.PageLogin, page, status)
}
