package resetpassword

import (
	"errors"
	"net/http"
	"strings"

	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
	service "blog/internal/core/services/reset_password"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const MSG_INVALID_LINK = "This password reset link is invalid or has expired."

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
	Email      string `json:"email"`
	Token      string `json:"token"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Email = strings.TrimSpace(r.PostForm.Get("email"))
	i.Token = r.PostForm.Get("token")
	i.Password = r.PostForm.Get("password")
	i.RePassword = r.PostForm.Get("rePassword")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 256)),
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&i.RePassword, validation.Required, validation.By(func(value interface{}) error {
			if value.(string) != i.Password {
				return errors.New("passwords do not match")
			}
			return nil
		})),
	)
}

type Form struct {
	Email string
	Token string
}

// Get shows the form only for links that carry both the user id and the token.
func (h *Handler) Get(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	token := query.Get("token")
	if query.Get("userId") == "" || token == "" {
		http.Redirect(rw, r, "/", http.StatusFound)
		return
	}
	h.render(rw, r, views.Page{Form: Form{Token: token}}, http.StatusOK)
}

func (h *Handler) Post(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromForm(r); err != nil {
		h.render(rw, r, views.Page{Form: Form{}, FormError: response.MSG_UNKNOWN_ERROR}, http.StatusBadRequest)
		return
	}
	page := views.Page{Form: Form{Email: input.Email, Token: input.Token}}
	if err := input.Validate(); err != nil {
		page.FieldErrors, _ = response.FieldErrors(err)
		h.render(rw, r, page, http.StatusUnprocessableEntity)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Email:       c.NewEmail(input.Email),
			Token:       user.ActionToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist), errors.Is(err, user.ErrInvalidActionToken):
			page.FormError = MSG_INVALID_LINK
			h.render(rw, r, page, http.StatusUnprocessableEntity)
		default:
			page.FormError = response.MSG_UNKNOWN_ERROR
			h.render(rw, r, page, http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(rw, r, "/account/login", http.StatusSeeOther)
}

func (h *Handler) render(rw http.ResponseWriter, r *http.Request, page views.Page, status int) {
	page.Title = "Reset password"
	h.renderer.Render(rw, r, views.PageResetPassword, page, status)
}
