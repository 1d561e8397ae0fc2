package router

import (
	"avkngifts-api/internal/handler"
	"avkngifts-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler        *handler.Handler
	ProxyHandler   *handler.ProxyHandler
	CatalogHandler *handler.CatalogHandler
	SessionHandler *handler.SessionHandler
	CartHandler    *handler.CartHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Session-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Operational endpoints
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// Passthrough proxies to the external gift API. These bypass the
	// session layer and the response envelope entirely.
	if cfg.ProxyHandler != nil {
		r.Get("/api/balance/{key}", cfg.ProxyHandler.Balance)
		r.Post("/api/gift", cfg.ProxyHandler.Gift)
	}

	// API v1 routes (session-scoped)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session)

		r.Route("/api/v1", func(r chi.Router) {
			if cfg.Handler != nil {
				r.Get("/health", cfg.Handler.Health)
				r.Get("/ready", cfg.Handler.Ready)
			}

			if cfg.CatalogHandler != nil {
				r.Route("/items", func(r chi.Router) {
					r.Get("/", cfg.CatalogHandler.ListItems)
					r.Get("/facets", cfg.CatalogHandler.Facets)
				})
			}

			if cfg.SessionHandler != nil {
				r.Route("/session", func(r chi.Router) {
					r.Get("/", cfg.SessionHandler.Get)
					r.Post("/key", cfg.SessionHandler.CheckKey)
					r.Delete("/key", cfg.SessionHandler.Logout)
					r.Post("/friend-code", cfg.SessionHandler.SetFriendCode)
					r.Delete("/friend-code", cfg.SessionHandler.ClearFriendCode)
				})
			}

			if cfg.CartHandler != nil {
				r.Route("/cart", func(r chi.Router) {
					r.Get("/", cfg.CartHandler.Get)
					r.Delete("/", cfg.CartHandler.Clear)
					r.Post("/items", cfg.CartHandler.AddItem)
					r.Delete("/items/{item_id}", cfg.CartHandler.RemoveItem)
					r.Post("/send", cfg.CartHandler.Send)
				})
			}
		})
	})

	return r
}
