package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/application/user"
	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/transport/http/handler"
	appmiddleware "github.com/go-contacts-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(deps.UserRepo, deps.Tokens, deps.Mailer, cfg.PublicBaseURL)
	contactSvc := contact.NewService(deps.ContactRepo)
	userSvc := user.NewService(deps.UserRepo, deps.AvatarStore)

	authH := handler.NewAuthHandler(authSvc)
	contactH := handler.NewContactHandler(contactSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler()

	authMw := appmiddleware.Auth(deps.Tokens, deps.UserRepo)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)
	// 5 requests/minute per remote address on /me/.
	meRL := appmiddleware.NewRateLimiter(rate.Every(12*time.Second), 5)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health-check/{action}", healthH.Ping)
	r.With(sensitiveRL.Limit).Post("/register/", authH.Register)
	r.Get("/verify/{token}", authH.Verify)
	r.With(sensitiveRL.Limit).Post("/token", authH.Token)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.With(meRL.Limit).Get("/me/", userH.Me)
		r.Put("/users/avatar/", userH.UpdateAvatar)

		r.Post("/contacts/", contactH.Create)
		r.Get("/contacts/", contactH.List)
		r.Get("/contacts/upcoming_birthdays/", contactH.UpcomingBirthdays)
		r.Get("/contacts/{id}", contactH.Get)
		r.Put("/contacts/{id}", contactH.Update)
		r.Delete("/contacts/{id}", contactH.Delete)
	})

	return r
}
