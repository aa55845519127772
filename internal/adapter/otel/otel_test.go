package otel

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Strob0t/SkillBridge/internal/config"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.OTel{ServiceName: "svc"}, "development")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		insecure     bool
		wantEndpoint string
		wantInsecure bool
	}{
		{"collector:4317", false, "collector:4317", false},
		{"collector:4317", true, "collector:4317", true},
		{"http://collector:4317/", false, "collector:4317", true},
		{"https://collector:4317", false, "collector:4317", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ep, insecure := parseEndpoint(tt.in, tt.insecure)
			if ep != tt.wantEndpoint || insecure != tt.wantInsecure {
				t.Errorf("parseEndpoint(%q, %v) = %q, %v; want %q, %v",
					tt.in, tt.insecure, ep, insecure, tt.wantEndpoint, tt.wantInsecure)
			}
		})
	}
}

func TestMetricsRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordAttempt(ctx, "model-a", OutcomeFailure)
	m.RecordAttempt(ctx, "model-b", OutcomeSuccess)
	m.RecordGeneration(ctx, OutcomeSuccess, 1.5)
	m.RecordPaddedWeeks(ctx, 2)
	m.RecordPaddedWeeks(ctx, 0)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	sums := map[string]int64{}
	var histCount uint64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[md.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					histCount += dp.Count
				}
			}
		}
	}

	if sums["skillbridge.model.attempts"] != 2 {
		t.Errorf("expected 2 attempts, got %d", sums["skillbridge.model.attempts"])
	}
	if sums["skillbridge.generations"] != 1 {
		t.Errorf("expected 1 generation, got %d", sums["skillbridge.generations"])
	}
	if sums["skillbridge.plan.padded_weeks"] != 2 {
		t.Errorf("expected 2 padded weeks, got %d", sums["skillbridge.plan.padded_weeks"])
	}
	if histCount != 1 {
		t.Errorf("expected 1 duration sample, got %d", histCount)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordAttempt(context.Background(), "m", OutcomeSuccess)
	m.RecordGeneration(context.Background(), OutcomeFailure, 1)
	m.RecordPaddedWeeks(context.Background(), 3)
}

func TestSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, gen := StartGenerationSpan(context.Background(), "beginner", "5-10")
	_, attempt := StartAttemptSpan(ctx, "model-a", 1)
	EndSpan(attempt, errors.New("boom"))
	EndSpan(gen, nil)

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 ended spans, got %d", len(spans))
	}
	if spans[0].Name() != "model.attempt" || spans[1].Name() != "plan.generate" {
		t.Errorf("unexpected span names %q, %q", spans[0].Name(), spans[1].Name())
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected failed attempt span to carry error status")
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("expected attempt span to be a child of the generation span")
	}
}
