package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Strob0t/SkillBridge/internal/domain/plan"
)

func TestBuildEmbedsRequest(t *testing.T) {
	got := Build(plan.Request{
		Goal:           "Master JavaScript",
		Background:     "beginner",
		TimeCommitment: "5-10",
		CurrentSkills:  "HTML, CSS",
	})

	assert.Contains(t, got, "- Goal: Master JavaScript")
	assert.Contains(t, got, "- User Background: beginner")
	assert.Contains(t, got, "- Time Available: 5-10 per week")
	assert.Contains(t, got, "- Current Skills: HTML, CSS")
	assert.Contains(t, got, `"goal": "Master JavaScript"`)
}

func TestBuildEmptySkills(t *testing.T) {
	got := Build(plan.Request{Goal: "g", Background: "b", TimeCommitment: "t"})
	assert.Contains(t, got, "- Current Skills: None")
}

func TestBuildStatesSchemaAndWeekCount(t *testing.T) {
	got := Build(plan.Request{Goal: "g", Background: "b", TimeCommitment: "t"})

	assert.Contains(t, got, "exactly 4-6 weeks")
	for _, field := range []string{
		`"goal"`, `"background"`, `"timeCommitment"`, `"description"`, `"weeks"`, `"nextSteps"`,
		`"weekNumber"`, `"title"`, `"topics"`, `"resources"`, `"milestone"`,
		`"type"`, `"duration"`, `"link"`, `"free"`,
	} {
		assert.Contains(t, got, field)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	req := plan.Request{Goal: "Learn <Go> & \"friends\"", Background: "b", TimeCommitment: "t"}
	a, b := Build(req), Build(req)
	assert.Equal(t, a, b)
	assert.True(t, strings.Contains(a, `Learn <Go> & "friends"`), "values must not be escaped")
}
