package me

import (
	"net/http"

	e "blog/internal/core/domain/errors"
	"blog/internal/http/handlers/auth"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"
)

// Handler shows the signed-in user. It is mounted behind auth.RequireAuthentication.
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
	u, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Redirect(rw, r, auth.LOGIN_PATH, http.StatusFound)
		return
	}
	h.renderer.Render(rw, r, views.PageMe, views.Page{Title: u.DisplayName(), Data: &u}, http.StatusOK)
}
