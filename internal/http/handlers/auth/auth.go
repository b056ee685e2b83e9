package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"
	getcurrentuser "blog/internal/core/services/get_current_user"
)

const (
	LOGIN_PATH       = "/account/login"
	RETURN_URL_PARAM = "ReturnUrl"
)

type contextCurrentUser string

const CONTEXT_CURRENT_USER_KEY = contextCurrentUser("currentUser")

func WithCurrentUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, CONTEXT_CURRENT_USER_KEY, u)
}

func CurrentUser(ctx context.Context) (u user.User, ok bool) {
	u, ok = ctx.Value(CONTEXT_CURRENT_USER_KEY).(user.User)
	return u, ok
}

// SetCurrentUserToContext resolves the signed-in user once per request.
// It must run after the session middleware.
func SetCurrentUserToContext(
	log logging.Logger,
	service services.Service[getcurrentuser.Input, getcurrentuser.Result],
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := service.Run(r.Context(), getcurrentuser.Input{})
			switch {
			case err == nil:
				r = r.WithContext(WithCurrentUser(r.Context(), result.User))
			case errors.Is(err, user.ErrUserDoesNotExist), errors.Is(err, context.Canceled):
				// Anonymous.
			default:
				log.Error(r.Context(), "Could not resolve current user.", logging.Entry("err", err))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthentication sends anonymous visitors to the login page and back afterwards.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			query := url.Values{RETURN_URL_PARAM: []string{r.URL.RequestURI()}}
			http.Redirect(w, r, LOGIN_PATH+"?"+query.Encode(), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsLocalURL accepts only paths on this site, so a return URL cannot redirect elsewhere.
func IsLocalURL(rawURL string) bool {
	if rawURL == "" || !strings.HasPrefix(rawURL, "/") {
		return false
	}
	if strings.HasPrefix(rawURL, "//") || strings.HasPrefix(rawURL, "/\\") {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
