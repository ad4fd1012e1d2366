package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every route. Reads are public; mutations need a bearer token.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Use(ColoredHTTPLoggingMiddleware)

	r.Get("/healthz", handlers.healthHandler.getHealth())

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/projects", handlers.projectHandler.getProjects())
		r.Get("/experience", handlers.experienceHandler.getExperience())
		r.Get("/skills", handlers.skillHandler.getSkillCategories())
		r.Get("/leetcode", handlers.leetCodeHandler.getStats())

		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/verify", handlers.authHandler.verify())

		r.Post("/contact", handlers.contactHandler.submit())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/auth/me", handlers.authHandler.me())

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects", handlers.projectHandler.updateProject())
		r.Delete("/projects", handlers.projectHandler.deleteProject())

		r.Post("/experience", handlers.experienceHandler.createExperience())
		r.Put("/experience", handlers.experienceHandler.updateExperience())
		r.Delete("/experience", handlers.experienceHandler.deleteExperience())

		r.Post("/skills", handlers.skillHandler.createSkillCategory())
		r.Put("/skills", handlers.skillHandler.updateSkillCategory())
		r.Delete("/skills", handlers.skillHandler.deleteSkillCategory())

		r.Post("/uploads", handlers.uploadHandler.uploadImage())
	})
}
