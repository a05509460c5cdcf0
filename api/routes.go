package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
)

// setupRoutes mounts the public, admin and upload surfaces under /api.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, settings config.Settings) {
	r.Get("/", handlers.healthHandler.root())
	r.Get("/health", handlers.healthHandler.health())
	r.Handle("/metrics", promhttp.Handler())

	if settings.UploadDir != "" {
		fileServer := http.StripPrefix(services.LocalURLPrefix+"/", http.FileServer(http.Dir(settings.UploadDir)))
		r.Handle(services.LocalURLPrefix+"/*", fileServer)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handlers.healthHandler.root())

		// Public endpoints
		r.Get("/portfolio", handlers.publicHandler.getPortfolio())
		r.With(rateLimit(settings.ContactRateLimit)).Post("/contact", handlers.publicHandler.submitContact())

		r.Route("/admin", func(r chi.Router) {
			r.With(rateLimit(settings.LoginRateLimit)).Post("/login", handlers.adminHandler.login())

			// Authenticated routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Get("/me", handlers.adminHandler.me())

				r.Get("/portfolio", handlers.adminHandler.getPortfolio())
				r.Put("/portfolio", handlers.adminHandler.updatePortfolio())

				// Project Handler endpoints
				r.Get("/projects", handlers.projectHandler.getAllProjects())
				r.Post("/projects", handlers.projectHandler.createProject())
				r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

				// Client Handler endpoints
				r.Get("/clients", handlers.clientHandler.getAllClients())
				r.Post("/clients", handlers.clientHandler.createClient())
				r.Put("/clients/{clientID}", handlers.clientHandler.updateClient())
				r.Delete("/clients/{clientID}", handlers.clientHandler.deleteClient())

				// Message Handler endpoints
				r.Get("/messages", handlers.messageHandler.getMessages())
				r.Put("/messages/{messageID}", handlers.messageHandler.updateMessage())
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Get("/config", handlers.uploadHandler.getConfig())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Post("/image", handlers.uploadHandler.uploadImage())
				r.Post("/video", handlers.uploadHandler.uploadVideo())
				r.Post("/multiple", handlers.uploadHandler.uploadMultiple())
				r.Delete("/file", handlers.uploadHandler.deleteFile())
			})
		})
	})
}
