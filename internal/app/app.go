package app

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"blog/internal/app/deps"
	"blog/internal/app/services"
	accessdenied "blog/internal/http/handlers/account/access_denied"
	confirmemail "blog/internal/http/handlers/account/confirm_email"
	forgotpassword "blog/internal/http/handlers/account/forgot_password"
	"blog/internal/http/handlers/account/login"
	"blog/internal/http/handlers/account/logout"
	"blog/internal/http/handlers/account/me"
	"blog/internal/http/handlers/account/register"
	resetpassword "blog/internal/http/handlers/account/reset_password"
	"blog/internal/http/handlers/auth"
	blogdetail "blog/internal/http/handlers/blog/blog_detail"
	"blog/internal/http/handlers/blog/category"
	"blog/internal/http/handlers/blog/home"
	"blog/internal/http/handlers/captcha"
	"blog/internal/http/handlers/requestid"
	"blog/internal/http/handlers/response"
	"blog/internal/http/views"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           NewRouter(deps, s),
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	pages, err := views.New()
	if err != nil {
		panic(err)
	}
	renderer := response.NewRenderer(deps.Logger, pages, deps.Config.GoogleRecaptchaSiteKey)

	accountRouter := chi.NewRouter()
	loginHandler := login.New(renderer, s.LogIn)
	accountRouter.Get("/login", loginHandler.Get)
	accountRouter.Post("/login", loginHandler.Post)
	registerHandler := register.New(renderer, s.Register)
	accountRouter.Get("/register", registerHandler.Get)
	accountRouter.Post("/register", registerHandler.Post)
	logoutHandler := logout.New(s.LogOut)
	accountRouter.Method(http.MethodGet, "/logout", logoutHandler)
	accountRouter.Method(http.MethodPost, "/logout", logoutHandler)
	accountRouter.Method(http.MethodGet, "/confirmemail", confirmemail.New(renderer, s.ConfirmEmail))
	forgotPasswordHandler := forgotpassword.New(renderer, s.ForgotPassword)
	accountRouter.Get("/forgotpassword", forgotPasswordHandler.Get)
	accountRouter.Post("/forgotpassword", forgotPasswordHandler.Post)
	resetPasswordHandler := resetpassword.New(renderer, s.ResetPassword)
	accountRouter.Get("/resetpassword", resetPasswordHandler.Get)
	accountRouter.Post("/resetpassword", resetPasswordHandler.Post)
	accountRouter.Method(http.MethodGet, "/accessdenied", accessdenied.New(renderer))
	accountRouter.With(auth.RequireAuthentication).Method(http.MethodGet, "/me", me.New(renderer))

	csrfKey := sha256.Sum256([]byte("csrf:" + deps.Config.Secret))

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	router.Use(requestid.SetRequestIDToContext)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(deps.Sessions.LoadAndSave)
	router.Use(csrf.Protect(
		csrfKey[:],
		csrf.Secure(!deps.Config.IsTestMode),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			renderer.Render(rw, r, views.PageError, views.Page{
				Title:     "Form expired",
				FormError: "The form has expired. Please go back, reload the page and try again.",
			}, http.StatusForbidden)
		})),
	))
	router.Use(captcha.SetCaptchaTokenToContext)
	router.Use(auth.SetCurrentUserToContext(deps.Logger, s.GetCurrentUser))

	router.NotFound(renderer.RenderNotFound)
	router.Method(http.MethodGet, "/", home.New(renderer, s.ListBlogs))
	router.Method(http.MethodGet, "/categories/{categoryID}", category.New(renderer, s.GetCategory))
	router.Method(http.MethodGet, "/blogs/{blogID}", blogdetail.New(renderer, s.GetBlog))
	router.Mount("/account", accountRouter)

	return router
}
