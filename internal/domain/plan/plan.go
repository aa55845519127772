// Package plan defines the learning-plan domain: the request a learner submits,
// the structured multi-week plan returned to them, and the normalization that
// turns free-form model output into that structure.
package plan

import "time"

// MinWeeks is the smallest number of weeks a normalized plan carries.
const MinWeeks = 4

// MaxWeeks is the largest number of weeks the prompt asks the model for.
// Normalization does not truncate plans above it.
const MaxWeeks = 6

// Provider identifies the text-generation backend stamped into plan metadata.
const (
	Provider    = "GROQ"
	GeneratedBy = "GROQ AI"
)

// Request is the learner's submission. It is immutable once validated.
type Request struct {
	Goal           string `json:"goal"`
	Background     string `json:"background"`
	TimeCommitment string `json:"timeCommitment"`
	CurrentSkills  string `json:"currentSkills,omitempty"`
}

// Resource is a single learning resource recommended for a week.
type Resource struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Link        string `json:"link"`
	Free        bool   `json:"free"`
}

// Week is one week of a learning plan.
type Week struct {
	WeekNumber  int        `json:"weekNumber"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Topics      []string   `json:"topics"`
	Resources   []Resource `json:"resources"`
	Milestone   string     `json:"milestone"`
}

// Metadata records how and when a plan was generated.
type Metadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	GeneratedBy string    `json:"generatedBy"`
	Model       string    `json:"model"`
	Provider    string    `json:"provider"`
}

// LearningPlan is the normalized plan returned to callers. It is synthesized
// per request and never stored server-side.
type LearningPlan struct {
	ID             string   `json:"id"`
	Success        bool     `json:"success"`
	Goal           string   `json:"goal"`
	Background     string   `json:"background"`
	TimeCommitment string   `json:"timeCommitment"`
	Description    string   `json:"description"`
	Duration       string   `json:"duration"`
	Weeks          []Week   `json:"weeks"`
	NextSteps      []string `json:"nextSteps"`
	Metadata       Metadata `json:"metadata"`
}

// SaveReceipt acknowledges a save request. Saving is a non-durable echo.
type SaveReceipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PathID  string `json:"pathId"`
	SavedAt string `json:"savedAt"`
	Data    any    `json:"data"`
}

// ProbeResult is the outcome of a trivial round-trip through the provider.
type ProbeResult struct {
	Model    string         `json:"model"`
	Response map[string]any `json:"response"`
}
