package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ripu1821/mobile-auth-service/internal/http/handler"
	"github.com/ripu1821/mobile-auth-service/internal/http/middleware"
)

type Dependencies struct {
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	DeviceHandler *handler.DeviceHandler
	TokenGuard    *middleware.TokenGuard
	RateLimiter   *middleware.RateLimiter
}

func New(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if deps.RateLimiter != nil {
				r.Use(deps.RateLimiter.Middleware)
			}
			r.Post("/auth/register", deps.AuthHandler.Register)
			r.Post("/auth/verify-otp", deps.AuthHandler.VerifyOtp)
			r.Post("/auth/refresh", deps.AuthHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.TokenGuard.Middleware)
			r.Post("/auth/logout", deps.AuthHandler.Logout)

			r.Get("/me", deps.UserHandler.Me)
			r.Get("/users", deps.UserHandler.List)
			r.Get("/users/{id}", deps.UserHandler.Get)
			r.Put("/users/{id}", deps.UserHandler.Update)
			r.Delete("/users/{id}", deps.UserHandler.Delete)

			r.Get("/devices", deps.DeviceHandler.List)
			r.Get("/devices/{id}", deps.DeviceHandler.Get)
			r.Put("/devices/{id}", deps.DeviceHandler.Update)
			r.Delete("/devices/{id}", deps.DeviceHandler.Delete)
		})
	})

	return r
}
