package blogdetail

import (
	"errors"
	"net/http"
	"strconv"

	"blog/internal/core/domain/blog"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/services"
	service "blog/internal/core/services/get_blog"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"

	"github.com/go-chi/chi/v5"
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
	blogID, err := strconv.ParseInt(chi.URLParam(r, "blogID"), 10, 64)
	if err != nil {
		h.renderer.RenderNotFound(rw, r)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{ID: blog.BlogID(blogID)})
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrBlogDoesNotExist):
			h.renderer.RenderNotFound(rw, r)
		default:
			h.renderer.RenderInternalError(rw, r)
		}
		return
	}

	h.renderer.Render(rw, r, views.PageBlog, views.Page{Title: result.Blog.Title, Data: result}, http.StatusOK)
}
