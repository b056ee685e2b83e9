package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog/internal/core/domain/user"
	"blog/internal/http/handlers/auth"
	"blog/internal/http/views"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	input := struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}{Name: "alice"}
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email, validation.Required),
		validation.Field(&input.Name, validation.Required),
	)

	fields, ok := FieldErrors(err)

	assert.True(t, ok)
	assert.Equal(t, map[string]string{"email": "cannot be blank"}, fields)
}

func TestFieldErrorsOfOtherError(t *testing.T) {
	fields, ok := FieldErrors(errors.New("boom"))

	assert.False(t, ok)
	assert.Nil(t, fields)
}

func TestRenderSetsStatusAndCurrentUser(t *testing.T) {
	renderer := NewTestRenderer()
	req := httptest.NewRequest(http.MethodGet, "/account/accessdenied", nil)
	req = req.WithContext(auth.WithCurrentUser(req.Context(), user.User{ID: 1, Username: "alice"}))
	rw := httptest.NewRecorder()

	renderer.Render(rw, req, views.PageAccessDenied, views.Page{}, http.StatusForbidden)

	assert.Equal(t, http.StatusForbidden, rw.Code)
	assert.Equal(t, "text/html; charset=utf-8", rw.Header().Get("Content-Type"))
	assert.Contains(t, rw.Body.String(), "alice")
}

func TestRenderUnknownPage(t *testing.T) {
	renderer := NewTestRenderer()
	rw := httptest.NewRecorder()

	renderer.Render(rw, httptest.NewRequest(http.MethodGet, "/", nil), "unknown", views.Page{}, http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, rw.Code)
}

func TestRenderNotFound(t *testing.T) {
	renderer := NewTestRenderer()
	rw := httptest.NewRecorder()

	renderer.RenderNotFound(rw, httptest.NewRequest(http.MethodGet, "/blogs/100", nil))

	assert.Equal(t, http.StatusNotFound, rw.Code)
	assert.Contains(t, rw.Body.String(), "Page not found")
}
