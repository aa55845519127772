package plan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Placeholder values substituted for fields the model left out.
const (
	defaultDescription       = "Your personalized learning path"
	defaultWeekDescription   = "Weekly learning content"
	defaultResourceType      = "article"
	defaultResourceTitle     = "Learning Resource"
	defaultResourceDesc      = "Educational content"
	defaultResourceDuration  = "2-3 hours"
	defaultResourceLink      = "https://example.com"
	fillerWeekDescription    = "Apply your skills to more complex projects and scenarios."
	fillerResourceTitle      = "Advanced Skills Development"
	fillerResourceDesc       = "Build upon your foundational knowledge"
	fillerResourceDuration   = "4-6 hours"
	fillerResourceLink       = "https://www.coursera.org"
	fillerResourceType       = "course"
	fillerTitleFormat        = "Week %d: Advanced Application"
	fillerMilestoneFormat    = "Complete a comprehensive project demonstrating week %d skills"
	defaultWeekTitleFormat   = "Week %d: Learning"
	defaultMilestoneFormat   = "Complete week %d objectives"
	durationFormat           = "%d weeks"
	planIDFormat             = "path_%d"
	defaultResourceFreeValue = true
)

var (
	defaultTopics = []string{"Core Concepts", "Practice Exercises"}
	fillerTopics  = []string{"Project Building", "Advanced Techniques", "Problem Solving"}
)

// Repairs reports what normalization had to change.
type Repairs struct {
	// ReturnedWeeks is the number of usable week entries the model produced.
	ReturnedWeeks int
	// PaddedWeeks is the number of filler weeks appended to reach MinWeeks.
	PaddedWeeks int
}

// Normalizer turns raw model text into a LearningPlan that always satisfies
// the plan shape: at least MinWeeks weeks, every week with topics and
// resources, and every resource fully populated.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a Normalizer stamping plans with the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerWithClock creates a Normalizer with a fixed time source.
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize extracts the plan object from text, validates it and repairs it.
// model is the identifier that produced text.
func (n *Normalizer) Normalize(text string, req Request, model string) (*LearningPlan, Repairs, error) {
	obj, err := ParseObject(text)
	if err != nil {
		return nil, Repairs{}, err
	}
	p, rep := n.FromObject(obj, req, model)
	return p, rep, nil
}

// FromObject builds a LearningPlan from an already validated object.
func (n *Normalizer) FromObject(obj map[string]any, req Request, model string) (*LearningPlan, Repairs) {
	rawWeeks, _ := obj["weeks"].([]any)

	weeks := make([]Week, 0, max(len(rawWeeks), MinWeeks))
	for i, raw := range rawWeeks {
		m, _ := raw.(map[string]any)
		weeks = append(weeks, normalizeWeek(m, i+1))
	}

	rep := Repairs{ReturnedWeeks: len(weeks)}
	for len(weeks) < MinWeeks {
		weeks = append(weeks, FillerWeek(len(weeks)+1))
		rep.PaddedWeeks++
	}

	nextSteps, _ := stringSlice(obj["nextSteps"])
	if nextSteps == nil {
		nextSteps = []string{}
	}

	now := n.now()
	return &LearningPlan{
		ID:             fmt.Sprintf(planIDFormat, now.UnixMilli()),
		Success:        true,
		Goal:           stringOr(obj["goal"], req.Goal),
		Background:     stringOr(obj["background"], req.Background),
		TimeCommitment: stringOr(obj["timeCommitment"], req.TimeCommitment),
		Description:    stringOr(obj["description"], defaultDescription),
		Duration:       fmt.Sprintf(durationFormat, len(weeks)),
		Weeks:          weeks,
		NextSteps:      nextSteps,
		Metadata: Metadata{
			GeneratedAt: now.UTC(),
			GeneratedBy: GeneratedBy,
			Model:       model,
			Provider:    Provider,
		},
	}, rep
}

// FillerWeek returns the generic week appended when a plan is too short.
func FillerWeek(number int) Week {
	return Week{
		WeekNumber:  number,
		Title:       fmt.Sprintf(fillerTitleFormat, number),
		Description: fillerWeekDescription,
		Topics:      append([]string(nil), fillerTopics...),
		Resources: []Resource{{
			Type:        fillerResourceType,
			Title:       fillerResourceTitle,
			Description: fillerResourceDesc,
			Duration:    fillerResourceDuration,
			Link:        fillerResourceLink,
			Free:        false,
		}},
		Milestone: fmt.Sprintf(fillerMilestoneFormat, number),
	}
}

// normalizeWeek fills every missing field of a week. m may be nil when the
// model emitted something other than an object.
func normalizeWeek(m map[string]any, number int) Week {
	topics, _ := stringSlice(m["topics"])
	if len(topics) == 0 {
		topics = append([]string(nil), defaultTopics...)
	}

	var resources []Resource
	if raw, ok := m["resources"].([]any); ok {
		for _, r := range raw {
			rm, _ := r.(map[string]any)
			resources = append(resources, normalizeResource(rm))
		}
	}
	if len(resources) == 0 {
		resources = []Resource{normalizeResource(nil)}
	}

	return Week{
		WeekNumber:  number,
		Title:       stringOr(m["title"], fmt.Sprintf(defaultWeekTitleFormat, number)),
		Description: stringOr(m["description"], defaultWeekDescription),
		Topics:      topics,
		Resources:   resources,
		Milestone:   stringOr(m["milestone"], fmt.Sprintf(defaultMilestoneFormat, number)),
	}
}

func normalizeResource(m map[string]any) Resource {
	return Resource{
		Type:        stringOr(m["type"], defaultResourceType),
		Title:       stringOr(m["title"], defaultResourceTitle),
		Description: stringOr(m["description"], defaultResourceDesc),
		Duration:    stringOr(m["duration"], defaultResourceDuration),
		Link:        stringOr(m["link"], defaultResourceLink),
		Free:        boolOr(m["free"], defaultResourceFreeValue),
	}
}

// stringOr renders scalar v as a string, falling back to def when v is
// missing, empty or not a scalar.
func stringOr(v any, def string) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case json.Number:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	}
	if s == "" {
		return def
	}
	return s
}

func boolOr(v any, def bool) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return b
		}
	}
	return def
}

// stringSlice converts a JSON array to strings, dropping empty entries.
// ok is false when v is not an array.
func stringSlice(v any) (out []string, ok bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out = make([]string, 0, len(raw))
	for _, item := range raw {
		if s := stringOr(item, ""); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}
