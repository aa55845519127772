// Package prompt renders the instructions sent to the text-generation provider.
package prompt

import (
	"embed"
	"strings"
	"text/template"

	"github.com/Strob0t/SkillBridge/internal/domain/plan"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var learningPathTemplate = template.Must(template.ParseFS(templateFS, "templates/learning_path.tmpl"))

// System is the system message sent ahead of every prompt.
const System = "You are a Learning Path Generator Assistant. You MUST return ONLY valid JSON. Do not include any markdown, code blocks, or explanatory text."

// Probe is the trivial prompt used to check that the provider answers.
const Probe = `Return {"status": "OK"}`

// noSkills replaces an empty CurrentSkills value.
const noSkills = "None"

type learningPathData struct {
	Goal           string
	Background     string
	TimeCommitment string
	CurrentSkills  string
	MinWeeks       int
	MaxWeeks       int
}

// Build renders the learning-path prompt for req. Request values are embedded
// verbatim.
func Build(req plan.Request) string {
	skills := req.CurrentSkills
	if skills == "" {
		skills = noSkills
	}

	var sb strings.Builder
	// Execution only fails on writer errors, which strings.Builder never returns.
	if err := learningPathTemplate.Execute(&sb, learningPathData{
		Goal:           req.Goal,
		Background:     req.Background,
		TimeCommitment: req.TimeCommitment,
		CurrentSkills:  skills,
		MinWeeks:       plan.MinWeeks,
		MaxWeeks:       plan.MaxWeeks,
	}); err != nil {
		panic("prompt: render learning path: " + err.Error())
	}
	return sb.String()
}
