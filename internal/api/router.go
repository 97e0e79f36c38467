package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/soundloop/soundloop-api/internal/api/handlers"
	"github.com/soundloop/soundloop-api/internal/api/middleware"
	"github.com/soundloop/soundloop-api/internal/service"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	soundHandler := handlers.NewSoundHandler(services.Sound)
	subscriptionHandler := handlers.NewSubscriptionHandler(services.Subscription)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"message": "Sound Loop API",
				"status":  "healthy",
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})

		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/session", authHandler.Session)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Sound routes
			r.Route("/sounds", func(r chi.Router) {
				r.Get("/", soundHandler.List)
				r.Post("/", soundHandler.Create)
				r.Get("/{id}", soundHandler.Get)
				r.Put("/{id}", soundHandler.Rename)
				r.Delete("/{id}", soundHandler.Delete)
			})

			// Subscription routes
			r.Route("/subscription", func(r chi.Router) {
				r.Get("/status", subscriptionHandler.Status)
				r.Post("/mock-upgrade", subscriptionHandler.MockUpgrade)
				r.Post("/mock-downgrade", subscriptionHandler.MockDowngrade)
			})
		})
	})

	return r
}
