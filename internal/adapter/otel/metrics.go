package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "skillbridge"

// Outcome values recorded on generation and attempt metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the SkillBridge metric instruments. A nil *Metrics records
// nothing.
type Metrics struct {
	Generations        metric.Int64Counter
	ModelAttempts      metric.Int64Counter
	GenerationDuration metric.Float64Histogram
	PaddedWeeks        metric.Int64Counter
}

// NewMetrics creates all instruments from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Generations, err = meter.Int64Counter("skillbridge.generations",
		metric.WithDescription("Number of plan generations by outcome"))
	if err != nil {
		return nil, err
	}

	m.ModelAttempts, err = meter.Int64Counter("skillbridge.model.attempts",
		metric.WithDescription("Number of provider calls by model and outcome"))
	if err != nil {
		return nil, err
	}

	m.GenerationDuration, err = meter.Float64Histogram("skillbridge.generation.duration_seconds",
		metric.WithDescription("Plan generation duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	m.PaddedWeeks, err = meter.Int64Counter("skillbridge.plan.padded_weeks",
		metric.WithDescription("Number of filler weeks added to short plans"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordGeneration counts a finished generation and its duration.
func (m *Metrics) RecordGeneration(ctx context.Context, outcome string, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.Generations.Add(ctx, 1, attrs)
	m.GenerationDuration.Record(ctx, seconds, attrs)
}

// RecordAttempt counts one provider call.
func (m *Metrics) RecordAttempt(ctx context.Context, model, outcome string) {
	if m == nil {
		return
	}
	m.ModelAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("outcome", outcome),
	))
}

// RecordPaddedWeeks counts filler weeks added during normalization.
func (m *Metrics) RecordPaddedWeeks(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.PaddedWeeks.Add(ctx, int64(n))
}
