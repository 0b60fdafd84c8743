package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/farhanrmdhni/portfolio-backend/database"
)

// setupRoutes wires the public site routes, the auth routes, and the
// admin routes. Admin routes authenticate before the store readiness
// check so an unauthenticated request never reaches the database.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, db database.Database) {
	responder := NewResponder(log.With().Str("handlerName", "router").Logger())
	storeReady := requireStore(db, responder)

	// Health and configuration state, available even in unconfigured mode
	r.Get("/status", handlers.statusHandler.getStatus())

	// Public site routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(storeReady)

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Get("/profile", handlers.profileHandler.getProfile())
		r.Post("/contact", handlers.contactHandler.submitContact())
	})

	// Auth routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/login", handlers.authHandler.login())
	})
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/auth/me", handlers.authHandler.me())
		r.Post("/auth/logout", handlers.authHandler.logout())
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)
		r.Use(storeReady)

		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/skill", handlers.skillHandler.createSkill())
		r.Put("/skill/{skillID}", handlers.skillHandler.updateSkill())
		r.Delete("/skill/{skillID}", handlers.skillHandler.deleteSkill())

		r.Get("/profile", handlers.profileHandler.getProfile())
		r.Put("/profile", handlers.profileHandler.saveProfile())
	})
}
