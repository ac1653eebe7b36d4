package api

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"cac-decision/internal/scoring"
)

const meterName = "cac-decision/api"

type evaluationMetrics struct {
	evaluations metric.Int64Counter
	rejected    metric.Int64Counter
	duration    metric.Float64Histogram
}

// newEvaluationMetrics registers instruments on meter, or on the global provider when nil.
func newEvaluationMetrics(meter metric.Meter) (*evaluationMetrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}
	evaluations, err := meter.Int64Counter("cac_evaluations_total",
		metric.WithDescription("Completed evaluations by risk level"))
	if err != nil {
		return nil, fmt.Errorf("evaluations counter: %w", err)
	}
	rejected, err := meter.Int64Counter("cac_evaluations_rejected_total",
		metric.WithDescription("Evaluation requests rejected by input validation"))
	if err != nil {
		return nil, fmt.Errorf("rejected counter: %w", err)
	}
	duration, err := meter.Float64Histogram("cac_evaluation_duration_ms",
		metric.WithDescription("Time spent validating and evaluating a request"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}
	return &evaluationMetrics{evaluations: evaluations, rejected: rejected, duration: duration}, nil
}

func (m *evaluationMetrics) recordEvaluation(ctx context.Context, level scoring.RiskLevel, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("risk_level", string(level)))
	m.evaluations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000.0, attrs)
}

func (m *evaluationMetrics) recordRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
