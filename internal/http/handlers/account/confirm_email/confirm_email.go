package confirmemail

import (
	"errors"
	"net/http"
	"strconv"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
	service "blog/internal/core/services/confirm_email"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"
)

var (
	AlertInvalidToken = views.Alert{
		Title:    "Invalid token",
		Message:  "The confirmation link is invalid.",
		Severity: views.SeverityDanger,
	}
	AlertConfirmed = views.Alert{
		Title:    "Account confirmed",
		Message:  "Your account has been confirmed. You can log in now.",
		Severity: views.SeveritySuccess,
	}
	AlertNotConfirmed = views.Alert{
		Title:    "Account not confirmed",
		Message:  "Your account could not be confirmed. The link may be expired or already used.",
		Severity: views.SeverityWarning,
	}
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
	UserID int64
	Token  string
}

// FromQuery returns false if either parameter is missing or the user id is not a number.
func (i *Input) FromQuery(r *http.Request) bool {
	query := r.URL.Query()
	rawUserID, token := query.Get("userId"), query.Get("token")
	if rawUserID == "" || token == "" {
		return false
	}
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return false
	}
	i.UserID = userID
	i.Token = token
	return true
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if !input.FromQuery(r) {
		h.render(rw, r, AlertInvalidToken, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{UserID: user.ID(input.UserID), Token: user.ActionToken(input.Token)},
	)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserDoesNotExist) || errors.Is(err, user.ErrInvalidActionToken) {
			status = http.StatusBadRequest
		}
		h.render(rw, r, AlertNotConfirmed, status)
		return
	}

	h.render(rw, r, AlertConfirmed, http.StatusOK)
}

func (h *Handler) render(rw http.ResponseWriter, r *http.Request, alert views.Alert, status int) {
	h.renderer.Render(rw, r, views.PageConfirmEmail, views.Page{Title: alert.Title, Alert: &alert}, status)
}
