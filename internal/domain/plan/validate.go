package plan

import (
	"fmt"
	"strings"

	"github.com/Strob0t/SkillBridge/internal/domain"
)

// RequiredFields lists the request fields a caller must supply.
var RequiredFields = []string{"goal", "background", "timeCommitment"}

// Normalize returns a copy of r with surrounding whitespace removed.
func (r Request) Normalize() Request {
	return Request{
		Goal:           strings.TrimSpace(r.Goal),
		Background:     strings.TrimSpace(r.Background),
		TimeCommitment: strings.TrimSpace(r.TimeCommitment),
		CurrentSkills:  strings.TrimSpace(r.CurrentSkills),
	}
}

// Validate checks that every required field is present.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Goal) == "" {
		missing = append(missing, "goal")
	}
	if strings.TrimSpace(r.Background) == "" {
		missing = append(missing, "background")
	}
	if strings.TrimSpace(r.TimeCommitment) == "" {
		missing = append(missing, "timeCommitment")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
