package logout

import (
	"net/http"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/services"
	service "blog/internal/core/services/log_out"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// ServeHTTP always ends on the home page. Sign out failures are logged by the service.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	_, _ = h.service.Run(r.Context(), service.Input{})
	http.Redirect(rw, r, "/", http.StatusSeeOther)
}
