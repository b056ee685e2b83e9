package accessdenied

import (
	"net/http"

	e "blog/internal/core/domain/errors"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"
)

type Handler struct {
	renderer *response.Renderer
}

func New(renderer *response.Renderer) *Handler {
	if renderer == nil {
		panic(e.NewNilArgumentError("renderer"))
	}
	return &Handler{renderer: renderer}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.renderer.Render(rw, r, views.PageAccessDenied, views.Page{Title: "Access denied"}, http.StatusForbidden)
}
