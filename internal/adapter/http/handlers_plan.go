package http

import (
	"encoding/json"
	"net/http"

	"github.com/Strob0t/SkillBridge/internal/domain/plan"
)

// GeneratePath handles POST /api/generate-path.
func (h *Handlers) GeneratePath(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[plan.Request](w, r, h.Server.MaxBodyBytes)
	if !ok {
		return
	}

	p, err := h.Plans.Generate(r.Context(), req)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SavePath handles POST /api/save-path. Nothing is stored; the plan is
// echoed back with a receipt.
func (h *Handlers) SavePath(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		PathData json.RawMessage `json:"pathData"`
	}](w, r, h.Server.MaxBodyBytes)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Plans.Save(r.Context(), req.PathData))
}

// TestAI handles POST /api/test-ai with a trivial provider round trip.
func (h *Handlers) TestAI(w http.ResponseWriter, r *http.Request) {
	res, err := h.Plans.Probe(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, apiError{
			Kind:     kindUpstream,
			Error:    "GROQ API test failed",
			Message:  h.detail(err),
			Provider: plan.Provider,
			Solution: "Check your GROQ_API_KEY and account status",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"message":         "GROQ API is working correctly",
		"model":           res.Model,
		"response":        res.Response,
		"timestamp":       timestamp(),
		"availableModels": h.Plans.Models(),
	})
}
