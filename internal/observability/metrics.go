package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ripu1821/mobile-auth-service"

var (
	metricsOnce   sync.Once
	repoOpCounter metric.Int64Counter
	authCounter   metric.Int64Counter
	guardCounter  metric.Int64Counter
)

func initMetrics() {
	meter := otel.Meter(meterName)
	repoOpCounter, _ = meter.Int64Counter(
		"repository_operations_total",
		metric.WithDescription("Repository operations by entity, operation and outcome"),
	)
	authCounter, _ = meter.Int64Counter(
		"auth_events_total",
		metric.WithDescription("Auth flow events by flow and outcome"),
	)
	guardCounter, _ = meter.Int64Counter(
		"token_guard_decisions_total",
		metric.WithDescription("Access token guard decisions"),
	)
}

// RecordRepositoryOperation counts a single repository call outcome.
// Outcome is one of success, not_found, conflict, stale, error.
func RecordRepositoryOperation(ctx context.Context, entity, op, outcome string) {
	metricsOnce.Do(initMetrics)
	repoOpCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}

// RecordAuthEvent counts a single auth flow outcome (signup, verify_otp,
// logout, refresh).
func RecordAuthEvent(ctx context.Context, flow, outcome string) {
	metricsOnce.Do(initMetrics)
	authCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("outcome", outcome),
	))
}

// RecordGuardDecision counts an access-token guard decision (missing,
// invalid, revoked, valid).
func RecordGuardDecision(ctx context.Context, decision string) {
	metricsOnce.Do(initMetrics)
	guardCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("decision", decision),
	))
}
