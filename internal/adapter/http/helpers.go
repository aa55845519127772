package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Strob0t/SkillBridge/internal/domain"
	"github.com/Strob0t/SkillBridge/internal/domain/plan"
)

// Error kinds reported in the "kind" field of error bodies.
const (
	kindValidation   = "validation"
	kindAuth         = "auth"
	kindRateLimited  = "rate_limited"
	kindDeprecated   = "model_decommissioned"
	kindUpstream     = "upstream"
	kindNotFound     = "not_found"
	kindTooLarge     = "payload_too_large"
	kindInternal     = "internal"
	modelsSuggestion = "Check https://console.groq.com/docs/models for latest models"
)

// timestampLayout renders UTC times with millisecond precision, e.g.
// 2026-03-14T09:26:53.589Z.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request, bodyLimit int64) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, apiError{
				Kind: kindTooLarge, Error: "Request body too large",
			})
		} else {
			writeError(w, http.StatusBadRequest, apiError{
				Kind: kindValidation, Error: "Invalid request body", Message: "Body must be a JSON object",
			})
		}
		return v, false
	}
	return v, true
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

// apiError is the body of every error response.
type apiError struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error"`
	Kind       string   `json:"kind"`
	Message    string   `json:"message,omitempty"`
	Provider   string   `json:"provider,omitempty"`
	Timestamp  string   `json:"timestamp"`
	Required   []string `json:"required,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Solution   string   `json:"solution,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, body apiError) {
	body.Success = false
	if body.Timestamp == "" {
		body.Timestamp = timestamp()
	}
	writeJSON(w, status, body)
}

// writePlanError maps a plan-generation error onto the HTTP error taxonomy.
// Internal detail reaches the client only in development.
func (h *Handlers) writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, apiError{
			Kind:     kindValidation,
			Error:    "Missing required fields",
			Message:  strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": "),
			Required: append([]string(nil), plan.RequiredFields...),
		})
	case errors.Is(err, domain.ErrAuth):
		slog.WarnContext(r.Context(), "provider rejected credentials", "error", err)
		writeError(w, http.StatusUnauthorized, apiError{
			Kind:       kindAuth,
			Error:      "Invalid GROQ API key",
			Message:    "Please check your GROQ_API_KEY configuration",
			Provider:   plan.Provider,
			Suggestion: modelsSuggestion,
		})
	case errors.Is(err, domain.ErrRateLimited):
		slog.WarnContext(r.Context(), "provider rate limited", "error", err)
		writeError(w, http.StatusTooManyRequests, apiError{
			Kind:       kindRateLimited,
			Error:      "Rate limit exceeded",
			Message:    "Please wait a moment and try again",
			Provider:   plan.Provider,
			Suggestion: modelsSuggestion,
		})
	case errors.Is(err, domain.ErrModelDecommissioned):
		slog.WarnContext(r.Context(), "configured model decommissioned", "error", err)
		writeError(w, http.StatusBadRequest, apiError{
			Kind:       kindDeprecated,
			Error:      "Model deprecated",
			Message:    "Please update the configured model list (GROQ_MODELS)",
			Provider:   plan.Provider,
			Suggestion: modelsSuggestion,
		})
	default:
		slog.ErrorContext(r.Context(), "learning plan generation failed", "error", err)
		kind := kindInternal
		if errors.Is(err, domain.ErrUpstream) {
			kind = kindUpstream
		}
		writeError(w, http.StatusInternalServerError, apiError{
			Kind:       kind,
			Error:      "Failed to generate learning path",
			Message:    h.detail(err),
			Provider:   plan.Provider,
			Suggestion: modelsSuggestion,
		})
	}
}

// detail returns err's text in development and a generic hint otherwise.
func (h *Handlers) detail(err error) string {
	if h.Server.IsDevelopment() {
		return err.Error()
	}
	return "Something went wrong"
}
