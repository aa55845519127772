package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sbotel "github.com/Strob0t/SkillBridge/internal/adapter/otel"
	"github.com/Strob0t/SkillBridge/internal/domain/plan"
	"github.com/Strob0t/SkillBridge/internal/domain/prompt"
)

// savedAtLayout matches the millisecond ISO-8601 timestamps the frontend expects.
const savedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// PlanServiceConfig configures a PlanService.
type PlanServiceConfig struct {
	RecommendedModel string
	ProbeModels      int
	Now              func() time.Time // nil = time.Now
}

// PlanService turns learner requests into normalized learning plans.
type PlanService struct {
	invoker     *ModelInvoker
	normalizer  *plan.Normalizer
	recommended string
	probeModels int
	metrics     *sbotel.Metrics
	now         func() time.Time
}

// NewPlanService creates a PlanService. metrics may be nil.
func NewPlanService(invoker *ModelInvoker, normalizer *plan.Normalizer, cfg PlanServiceConfig, metrics *sbotel.Metrics) *PlanService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &PlanService{
		invoker:     invoker,
		normalizer:  normalizer,
		recommended: cfg.RecommendedModel,
		probeModels: cfg.ProbeModels,
		metrics:     metrics,
		now:         now,
	}
}

// Generate validates req, asks the models for a plan and normalizes the
// first usable answer. Validation failures wrap domain.ErrValidation.
func (s *PlanService) Generate(ctx context.Context, req plan.Request) (*plan.LearningPlan, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := sbotel.StartGenerationSpan(ctx, req.Background, req.TimeCommitment)
	start := time.Now()

	p, err := s.generate(ctx, req)

	outcome := sbotel.OutcomeSuccess
	if err != nil {
		outcome = sbotel.OutcomeFailure
	}
	s.metrics.RecordGeneration(ctx, outcome, time.Since(start).Seconds())
	sbotel.EndSpan(span, err)
	return p, err
}

func (s *PlanService) generate(ctx context.Context, req plan.Request) (*plan.LearningPlan, error) {
	slog.InfoContext(ctx, "generating learning plan",
		"goal", req.Goal, "background", req.Background, "time_commitment", req.TimeCommitment)

	completion, err := s.invoker.Invoke(ctx, prompt.Build(req), plan.CheckObject)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	p, repairs, err := s.normalizer.Normalize(completion.Text, req, completion.Model)
	if err != nil {
		return nil, fmt.Errorf("normalize plan: %w", err)
	}

	if repairs.PaddedWeeks > 0 {
		s.metrics.RecordPaddedWeeks(ctx, repairs.PaddedWeeks)
		slog.InfoContext(ctx, "padded short plan",
			"model", completion.Model, "returned_weeks", repairs.ReturnedWeeks, "padded_weeks", repairs.PaddedWeeks)
	}
	if len(p.Weeks) > plan.MaxWeeks {
		slog.WarnContext(ctx, "plan exceeds requested week range",
			"model", completion.Model, "weeks", len(p.Weeks), "max", plan.MaxWeeks)
	}

	slog.InfoContext(ctx, "learning plan generated",
		"id", p.ID, "model", completion.Model, "weeks", len(p.Weeks))
	return p, nil
}

// Save acknowledges a plan without storing it.
func (s *PlanService) Save(ctx context.Context, data any) plan.SaveReceipt {
	now := s.now()
	receipt := plan.SaveReceipt{
		Success: true,
		Message: "Path saved successfully",
		PathID:  fmt.Sprintf("saved_%d", now.UnixMilli()),
		SavedAt: now.UTC().Format(savedAtLayout),
		Data:    data,
	}
	slog.InfoContext(ctx, "learning plan saved", "path_id", receipt.PathID)
	return receipt
}

// Probe runs a trivial round trip through the first few models and returns
// the JSON object the first responsive model produced.
func (s *PlanService) Probe(ctx context.Context) (*plan.ProbeResult, error) {
	completion, err := s.invoker.Limit(s.probeModels).Invoke(ctx, prompt.Probe, func(text string) error {
		_, err := parseProbe(text)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}

	obj, err := parseProbe(completion.Text)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}
	return &plan.ProbeResult{Model: completion.Model, Response: obj}, nil
}

func parseProbe(text string) (map[string]any, error) {
	span, err := plan.ExtractObject(text)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", plan.ErrInvalidJSON, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: top-level value is null", plan.ErrInvalidJSON)
	}
	return obj, nil
}

// Models returns the configured models in priority order.
func (s *PlanService) Models() []string { return s.invoker.Models() }

// Recommended returns the model advertised to clients as the default.
func (s *PlanService) Recommended() string { return s.recommended }
