package http

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/Strob0t/SkillBridge/internal/domain"
	"github.com/Strob0t/SkillBridge/internal/domain/plan"
)

// Root handles GET / with a service descriptor.
func (h *Handlers) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":       "SkillBridge AI API",
		"status":        "operational",
		"provider":      plan.GeneratedBy,
		"version":       h.Version,
		"environment":   h.Server.Environment,
		"uptime":        h.uptime(),
		"documentation": "Access /api/health for detailed service status",
		"endpoints":     apiRoutes[1:],
		"quickStart": map[string]string{
			"testHealth":   "curl http://localhost:" + h.Server.Port + "/api/health",
			"testModels":   "curl http://localhost:" + h.Server.Port + "/api/models",
			"generatePath": `curl -X POST http://localhost:` + h.Server.Port + `/api/generate-path -H "Content-Type: application/json" -d '{"goal":"Become a Junior Web Developer","background":"beginner","timeCommitment":"5-10"}'`,
		},
	})
}

type memoryUsage struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	HeapInuse  uint64 `json:"heapInuse"`
	NumGC      uint32 `json:"numGC"`
}

// Health handles GET /api/health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"service":          "SkillBridge API",
		"timestamp":        timestamp(),
		"provider":         plan.Provider,
		"models":           len(h.Plans.Models()),
		"environment":      h.Server.Environment,
		"apiKeyConfigured": h.APIKeyConfigured,
		"memoryUsage": memoryUsage{
			Alloc:      ms.Alloc,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			HeapAlloc:  ms.HeapAlloc,
			HeapInuse:  ms.HeapInuse,
			NumGC:      ms.NumGC,
		},
		"goVersion":   runtime.Version(),
		"corsOrigins": h.Server.CORSOrigins,
		"uptime":      h.uptime(),
	})
}

// ListGoals handles GET /api/goals.
func (h *Handlers) ListGoals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Goals())
}

// ListBackgrounds handles GET /api/backgrounds.
func (h *Handlers) ListBackgrounds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Backgrounds())
}

// ListTimeOptions handles GET /api/time-options.
func (h *Handlers) ListTimeOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.TimeOptions())
}

// ListModels handles GET /api/models.
func (h *Handlers) ListModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"models":      h.Plans.Models(),
		"recommended": h.Plans.Recommended(),
		"timestamp":   timestamp(),
	})
}

// NotFound answers unknown routes and unsupported methods with the route
// listing.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	slog.DebugContext(r.Context(), "unmatched route", "method", r.Method, "path", r.URL.Path, "error", domain.ErrNotFound)
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success":         false,
		"error":           "Route not found",
		"kind":            kindNotFound,
		"requestedUrl":    r.URL.RequestURI(),
		"method":          r.Method,
		"timestamp":       timestamp(),
		"availableRoutes": apiRoutes,
		"documentation":   "Visit the root route (/) for API documentation",
	})
}

// uptime returns seconds since start.
func (h *Handlers) uptime() float64 {
	if h.StartedAt.IsZero() {
		return 0
	}
	return time.Since(h.StartedAt).Seconds()
}
