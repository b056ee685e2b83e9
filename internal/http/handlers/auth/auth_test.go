package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	getcurrentuser "blog/internal/core/services/get_current_user"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	user user.User
	err  error
}

func (s *stubService) Run(ctx context.Context, input getcurrentuser.Input) (result getcurrentuser.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	result.User = s.user
	return result, nil
}

func TestIsLocalURL(t *testing.T) {
	cases := []struct {
		url     string
		isLocal bool
	}{
		{url: "/", isLocal: true},
		{url: "/account/me", isLocal: true},
		{url: "/blogs/1?tab=comments", isLocal: true},
		{url: "", isLocal: false},
		{url: "account/me", isLocal: false},
		{url: "//evil.com/path", isLocal: false},
		{url: "/\\evil.com", isLocal: false},
		{url: "https://evil.com/", isLocal: false},
		{url: "javascript:alert(1)", isLocal: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.url, func(t *testing.T) {
			assert.Equal(t, testcase.isLocal, IsLocalURL(testcase.url))
		})
	}
}

func TestRequireAuthenticationRedirectsAnonymous(t *testing.T) {
	handler := RequireAuthentication(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/account/me", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusFound, rw.Code)
	assert.Equal(t, "/account/login?ReturnUrl=%2Faccount%2Fme", rw.Header().Get("Location"))
}

func TestRequireAuthenticationPassesSignedInUser(t *testing.T) {
	handler := RequireAuthentication(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/account/me", nil)
	req = req.WithContext(WithCurrentUser(req.Context(), user.User{ID: 1}))
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusOK, rw.Code)
}

func TestSetCurrentUserToContext(t *testing.T) {
	cases := []struct {
		id          string
		service     *stubService
		expectedOK  bool
		errorsCount int
	}{
		{id: "signed-in", service: &stubService{user: user.User{ID: 7}}, expectedOK: true},
		{id: "anonymous", service: &stubService{err: user.ErrUserDoesNotExist}},
		{id: "failure", service: &stubService{err: errors.New("db is down")}, errorsCount: 1},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			log := logging.NewFakeLogger()
			var current user.User
			var ok bool
			handler := SetCurrentUserToContext(log, testcase.service)(
				http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
					current, ok = CurrentUser(r.Context())
				}),
			)

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, testcase.expectedOK, ok)
			if testcase.expectedOK {
				assert.Equal(t, user.ID(7), current.ID)
			}
			assert.Equal(t, testcase.errorsCount, log.CountByLevel(logging.ERROR))
		})
	}
}
