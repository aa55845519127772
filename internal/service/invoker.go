package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sbotel "github.com/Strob0t/SkillBridge/internal/adapter/otel"
	"github.com/Strob0t/SkillBridge/internal/domain"
	"github.com/Strob0t/SkillBridge/internal/port/llm"
)

// ErrNoModels is returned by Invoke when the invoker has an empty model list.
var ErrNoModels = fmt.Errorf("%w: no models configured", domain.ErrUpstream)

// Completion is the text produced by the first usable model.
type Completion struct {
	Model string
	Text  string
}

// InvokerConfig configures a ModelInvoker.
type InvokerConfig struct {
	Models         []string // tried in order
	System         string   // sent before the prompt when non-empty
	Params         llm.Params
	AttemptTimeout time.Duration // 0 = bounded only by ctx
}

// ModelInvoker runs the model fallback loop: each configured model is tried
// in order, one at a time, until one returns usable text. The model list is
// fixed at construction.
type ModelInvoker struct {
	llm            llm.ChatCompleter
	models         []string
	system         string
	params         llm.Params
	attemptTimeout time.Duration
	metrics        *sbotel.Metrics
}

// NewModelInvoker creates an invoker over completer. metrics may be nil.
func NewModelInvoker(completer llm.ChatCompleter, cfg InvokerConfig, metrics *sbotel.Metrics) *ModelInvoker {
	return &ModelInvoker{
		llm:            completer,
		models:         append([]string(nil), cfg.Models...),
		system:         cfg.System,
		params:         cfg.Params,
		attemptTimeout: cfg.AttemptTimeout,
		metrics:        metrics,
	}
}

// Models returns a copy of the model list in priority order.
func (i *ModelInvoker) Models() []string {
	return append([]string(nil), i.models...)
}

// Limit returns an invoker that only tries the first n models.
func (i *ModelInvoker) Limit(n int) *ModelInvoker {
	cp := *i
	if n >= 0 && n < len(i.models) {
		cp.models = append([]string(nil), i.models[:n]...)
	} else {
		cp.models = i.Models()
	}
	return &cp
}

// Invoke sends prompt to each model in turn and returns the first completion
// whose text is accepted. A nil accept takes any text. When every model
// fails, the returned error wraps the last attempt's error. Cancelling ctx
// stops the loop before the next attempt.
func (i *ModelInvoker) Invoke(ctx context.Context, prompt string, accept func(string) error) (Completion, error) {
	if len(i.models) == 0 {
		return Completion{}, ErrNoModels
	}

	messages := make([]llm.Message, 0, 2)
	if i.system != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: i.system})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	var lastErr error
	for n, model := range i.models {
		if err := ctx.Err(); err != nil {
			return Completion{}, fmt.Errorf("invoke cancelled after %d attempts: %w", n, err)
		}
		text, err := i.attempt(ctx, model, n+1, messages, accept)
		if err == nil {
			return Completion{Model: model, Text: text}, nil
		}
		lastErr = err
	}
	return Completion{}, fmt.Errorf("all %d models failed: %w", len(i.models), lastErr)
}

func (i *ModelInvoker) attempt(ctx context.Context, model string, n int, messages []llm.Message, accept func(string) error) (text string, err error) {
	ctx, span := sbotel.StartAttemptSpan(ctx, model, n)
	defer func() { sbotel.EndSpan(span, err) }()

	callCtx := ctx
	if i.attemptTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, i.attemptTimeout)
		defer cancel()
	}

	start := time.Now()
	slog.DebugContext(ctx, "trying model", "model", model, "attempt", n)

	text, err = i.llm.Complete(callCtx, model, messages, i.params)
	if err == nil && accept != nil {
		if aerr := accept(text); aerr != nil {
			err = fmt.Errorf("unusable output: %w", aerr)
		}
	}
	if err != nil {
		i.metrics.RecordAttempt(ctx, model, sbotel.OutcomeFailure)
		slog.WarnContext(ctx, "model attempt failed",
			"model", model, "attempt", n, "duration", time.Since(start), "error", err)
		return "", fmt.Errorf("model %s: %w", model, err)
	}

	i.metrics.RecordAttempt(ctx, model, sbotel.OutcomeSuccess)
	slog.InfoContext(ctx, "model attempt succeeded",
		"model", model, "attempt", n, "duration", time.Since(start))
	return text, nil
}
