package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/justic/justic-api/internal/api"
	apiMiddleware "github.com/justic/justic-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := api.NewHealthHandler(app.checks)
	authHandler := api.NewAuthHandler(app.loginService, app.config.Auth)
	videoHandler := api.NewVideoHandler(app.videoService, app.config.Media)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.Login)
		r.Get("/callback", authHandler.Callback)
		r.Get("/session", authHandler.Session)
	})

	r.Route("/api/video", func(r chi.Router) {
		// Provider webhook (public)
		r.Post("/callback", videoHandler.Callback)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/generate", videoHandler.Generate)
			r.Get("/list", videoHandler.List)
			r.Get("/status/{taskID}", videoHandler.Status)
			r.Get("/stream/{taskID}", videoHandler.Stream)
			r.Get("/thumb/{taskID}", videoHandler.Thumbnail)
		})
	})

	return r
}
