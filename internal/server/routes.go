package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/anbuchelva/cams/internal/handler"
	"github.com/anbuchelva/cams/internal/middleware"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", handler.Health)

	gate := middleware.NewGate(s.tokens)
	authHandler := handler.NewAuthHandler(s.users, s.tokens)
	projectsHandler := handler.NewProjectsHandler(s.projects, s.blobs, s.cfg.MaxUploadBytes, s.cfg.OwnerScopedProjects)
	notificationsHandler := handler.NewNotificationsHandler(s.notifier)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Registration and login sit outside the token gate but
			// behind the per-IP limiter.
			r.Group(func(r chi.Router) {
				r.Use(s.rateLimiter.Handler)
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
			r.Group(func(r chi.Router) {
				r.Use(gate.Handler)
				r.Get("/verify", authHandler.Verify)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(gate.Handler)

			r.Get("/notifications", notificationsHandler.List)

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", projectsHandler.Create)
				r.Get("/", projectsHandler.List)
				r.Get("/recent", projectsHandler.Recent)
				r.Get("/stats", projectsHandler.Stats)
				r.Get("/download", projectsHandler.Export)
				r.Get("/{id}", projectsHandler.Get)
				r.Get("/{id}/download/{fileType}", projectsHandler.DownloadAttachment)
			})
		})
	})

	return r
}
