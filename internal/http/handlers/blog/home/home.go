package home

import (
	"net/http"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/services"
	service "blog/internal/core/services/list_blogs"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		h.renderer.RenderInternalError(rw, r)
		return
	}
	h.renderer.Render(rw, r, views.PageHome, views.Page{Data: result}, http.StatusOK)
}
