package response

import (
	"bytes"
	"errors"
	"net/http"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/http/handlers/auth"
	"blog/internal/http/views"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gorilla/csrf"
)

const MSG_UNKNOWN_ERROR = "An unknown error occurred. Please try again."

type Renderer struct {
	log              logging.Logger
	views            *views.Views
	recaptchaSiteKey string
}

func NewRenderer(log logging.Logger, views *views.Views, recaptchaSiteKey string) *Renderer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if views == nil {
		panic(e.NewNilArgumentError("views"))
	}
	return &Renderer{log: log, views: views, recaptchaSiteKey: recaptchaSiteKey}
}

// Render fills the request scoped parts of data (CSRF field, current user) and writes the page.
func (rr *Renderer) Render(rw http.ResponseWriter, r *http.Request, page string, data views.Page, status int) {
	data.CSRFField = csrf.TemplateField(r)
	data.RecaptchaSiteKey = rr.recaptchaSiteKey
	if u, ok := auth.CurrentUser(r.Context()); ok {
		data.CurrentUser = &u
	}

	buf := bytes.Buffer{}
	if err := rr.views.Render(&buf, page, data); err != nil {
		rr.log.Error(r.Context(), "Could not render page.", logging.Entry("page", page), logging.Entry("err", err))
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	buf.WriteTo(rw)
}

func (rr *Renderer) RenderInternalError(rw http.ResponseWriter, r *http.Request) {
	rr.Render(rw, r, views.PageError, views.Page{
		Title:     "Something went wrong",
		FormError: MSG_UNKNOWN_ERROR,
	}, http.StatusInternalServerError)
}

func (rr *Renderer) RenderNotFound(rw http.ResponseWriter, r *http.Request) {
	rr.Render(rw, r, views.PageError, views.Page{
		Title:     "Page not found",
		FormError: "The page you are looking for does not exist.",
	}, http.StatusNotFound)
}

// FieldErrors flattens ozzo validation errors into messages keyed by form field name.
// It returns false for any other error.
func FieldErrors(err error) (map[string]string, bool) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, false
	}
	fields := make(map[string]string, len(errs))
	for field, err := range errs {
		fields[field] = err.Error()
	}
	return fields, true
}
