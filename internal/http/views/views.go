package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"blog/internal/core/domain/user"

	"github.com/golang-module/carbon/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	PageHome           = "home"
	PageCategory       = "category"
	PageBlog           = "blog"
	PageLogin          = "login"
	PageRegister       = "register"
	PageConfirmEmail   = "confirm_email"
	PageForgotPassword = "forgot_password"
	PageResetPassword  = "reset_password"
	PageAccessDenied   = "access_denied"
	PageMe             = "me"
	PageError          = "error"
)

var pages = []string{
	PageHome,
	PageCategory,
	PageBlog,
	PageLogin,
	PageRegister,
	PageConfirmEmail,
	PageForgotPassword,
	PageResetPassword,
	PageAccessDenied,
	PageMe,
	PageError,
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Alert is a one-off outcome message shown above the page content.
type Alert struct {
	Title    string
	Message  string
	Severity Severity
}

type Page struct {
	Title            string
	CurrentUser      *user.User
	CSRFField        template.HTML
	RecaptchaSiteKey string

	// Form holds the submitted values of the page form, never passwords.
	Form        interface{}
	FieldErrors map[string]string
	FormError   string

	Alert *Alert
	Data  interface{}
}

type Views struct {
	templates map[string]*template.Template
}

func New() (*Views, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			return carbon.Time2Carbon(t).ToLayoutString("Jan 2, 2006")
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(
			templatesFS,
			"templates/layout.html",
			fmt.Sprintf("templates/%s.html", page),
		)
		if err != nil {
			return nil, fmt.Errorf("could not parse %q page: %w", page, err)
		}
		templates[page] = t
	}
	return &Views{templates: templates}, nil
}

// Render executes the page into a buffer first, so a failing template never writes a partial page.
func (v *Views) Render(w io.Writer, page string, data Page) error {
	t, ok := v.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	buf := bytes.Buffer{}
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
