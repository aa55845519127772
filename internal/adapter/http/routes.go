package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// apiRoutes lists every registered route; it is served by / and the 404
// handler. The first entry is the root route.
var apiRoutes = []string{
	"GET  /",
	"GET  /api/health",
	"GET  /api/goals",
	"GET  /api/backgrounds",
	"GET  /api/time-options",
	"GET  /api/models",
	"POST /api/generate-path",
	"POST /api/save-path",
	"POST /api/test-ai",
}

// MountRoutes registers all API routes on the given chi router. The mutating
// routes are wrapped in idempotency when it is non-nil.
func MountRoutes(r chi.Router, h *Handlers, idempotency func(http.Handler) http.Handler) {
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	r.Get("/", h.Root)
	r.Get("/api/health", h.Health)
	r.Get("/api/goals", h.ListGoals)
	r.Get("/api/backgrounds", h.ListBackgrounds)
	r.Get("/api/time-options", h.ListTimeOptions)
	r.Get("/api/models", h.ListModels)

	r.Group(func(r chi.Router) {
		if idempotency != nil {
			r.Use(idempotency)
		}
		r.Post("/api/generate-path", h.GeneratePath)
		r.Post("/api/save-path", h.SavePath)
		r.Post("/api/test-ai", h.TestAI)
	})
}
