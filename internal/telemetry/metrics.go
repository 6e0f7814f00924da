package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter(serviceName)

var (
	runsTotal, _ = meter.Int64Counter("pacing.runs",
		metric.WithDescription("Completed pacing runs"))
	recordsAppended, _ = meter.Int64Counter("pacing.interim.appended",
		metric.WithDescription("Alert records appended to the interim store"))
	recordsPublished, _ = meter.Int64Counter("pacing.mart.published",
		metric.WithDescription("Records promoted into the downstream marts"))
	duplicatesSkipped, _ = meter.Int64Counter("pacing.mart.duplicates",
		metric.WithDescription("Promotions skipped because the natural key already exists"))
)

// RecordRun counts one completed pacing run for the given platform.
func RecordRun(ctx context.Context, platform string) {
	runsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("platform", platform)))
}

// RecordAppended counts interim documents written.
func RecordAppended(ctx context.Context, n int) {
	recordsAppended.Add(ctx, int64(n))
}

// RecordPublished counts records promoted to a mart.
func RecordPublished(ctx context.Context, mart string, n int) {
	recordsPublished.Add(ctx, int64(n), metric.WithAttributes(attribute.String("mart", mart)))
}

// RecordDuplicate counts one skipped duplicate promotion.
func RecordDuplicate(ctx context.Context, mart string) {
	duplicatesSkipped.Add(ctx, 1, metric.WithAttributes(attribute.String("mart", mart)))
}
