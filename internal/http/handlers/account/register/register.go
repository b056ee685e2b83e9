package register

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
	"blog/internal/core/services/captcha"
	service "blog/internal/core/services/register"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const MSG_INVALID_CAPTCHA = "Please confirm that you are not a robot."

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

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
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Email = strings.TrimSpace(r.PostForm.Get("email"))
	i.Username = r.PostForm.Get("username")
	i.FirstName = r.PostForm.Get("firstName")
	i.LastName = r.PostForm.Get("lastName")
	i.Password = r.PostForm.Get("password")
	i.RePassword = r.PostForm.Get("rePassword")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 256)),
		validation.Field(
			&i.Username,
			validation.Required,
			validation.Length(3, 64),
			validation.Match(usernameRegexp).Error("must contain only letters, digits, dots, dashes and underscores"),
		),
		validation.Field(&i.FirstName, validation.Required, validation.Length(0, 100)),
		validation.Field(&i.LastName, validation.Required, validation.Length(0, 100)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&i.RePassword, validation.Required, validation.By(equals(i.Password))),
	)
}

func equals(password string) validation.RuleFunc {
	return func(value interface{}) error {
		if value.(string) != password {
			return errors.New("passwords do not match")
		}
		return nil
	}
}

type Form struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
}

func (h *Handler) Get(rw http.ResponseWriter, r *http.Request) {
	h.render(rw, r, views.Page{Form: Form{}}, http.StatusOK)
}

func (h *Handler) Post(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromForm(r); err != nil {
		h.render(rw, r, views.Page{Form: Form{}, FormError: response.MSG_UNKNOWN_ERROR}, http.StatusBadRequest)
		return
	}
	page := views.Page{Form: Form{
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}}
	if err := input.Validate(); err != nil {
		page.FieldErrors, _ = response.FieldErrors(err)
		h.render(rw, r, page, http.StatusUnprocessableEntity)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Email:     c.NewEmail(input.Email),
			Username:  user.Username(input.Username),
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Password:  user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, captcha.ErrInvalidCaptcha) {
		page.FormError = MSG_INVALID_CAPTCHA
		h.render(rw, r, page, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		// Duplicates included: the cause is logged by the service and not echoed.
		page.FormError = response.MSG_UNKNOWN_ERROR
		h.render(rw, r, page, http.StatusUnprocessableEntity)
		return
	}

	http.Redirect(rw, r, "/account/login", http.StatusSeeOther)
}

func (h *Handler) render(rw http.ResponseWriter, r *http.Request, page views.Page, status int) {
	page.Title = "Register"
	h.renderer.Render(rw, r, views.PageRegister, page, status)
}
