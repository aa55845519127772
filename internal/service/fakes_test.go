package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Strob0t/SkillBridge/internal/port/llm"
)

// fakeCompleter answers per model and records every call in order.
type fakeCompleter struct {
	mu       sync.Mutex
	replies  map[string]string
	failures map[string]error
	calls    []string
	messages [][]llm.Message
	params   []llm.Params
}

func newFakeCompleter() *fakeCompleter {
	return &fakeCompleter{replies: map[string]string{}, failures: map[string]error{}}
}

func (f *fakeCompleter) reply(model, text string) *fakeCompleter {
	f.replies[model] = text
	return f
}

func (f *fakeCompleter) fail(model string, err error) *fakeCompleter {
	f.failures[model] = err
	return f
}

func (f *fakeCompleter) Complete(ctx context.Context, model string, messages []llm.Message, params llm.Params) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, model)
	f.messages = append(f.messages, messages)
	f.params = append(f.params, params)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.failures[model]; ok {
		return "", err
	}
	if text, ok := f.replies[model]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no reply configured for %s", model)
}

func (f *fakeCompleter) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// planJSON renders a model answer with n weeks wrapped in prose.
func planJSON(n int) string {
	var weeks []string
	for i := 1; i <= n; i++ {
		weeks = append(weeks, fmt.Sprintf(`{
			"weekNumber": %d,
			"title": "Week %d: Topic",
			"description": "desc %d",
			"topics": ["t%d"],
			"resources": [{"type":"video","title":"r%d","description":"d","duration":"1 hour","link":"https://example.org/%d","free":true}],
			"milestone": "m%d"
		}`, i, i, i, i, i, i, i))
	}
	return `Here is your plan:
{
	"goal": "Master JavaScript",
	"background": "beginner",
	"timeCommitment": "5-10",
	"description": "A JavaScript path",
	"weeks": [` + strings.Join(weeks, ",") + `],
	"nextSteps": ["Build a portfolio"]
}
Good luck!`
}
