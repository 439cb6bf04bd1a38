package observability

import (
	"context"
	"time"

	"skill-match-workers/internal/common/config"
	"skill-match-workers/internal/common/logger"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the process-wide meter and tracer providers.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	logger         logger.Logger

	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	rankingScored  otelmetric.Int64Counter
	rankingMatched otelmetric.Int64Counter
}

// New wires an OpenTelemetry meter exporting through reg and a tracer that
// exports to Jaeger when cfg.JaegerEndpoint is set. Exporter failures leave
// the corresponding instruments as no-ops.
func New(cfg config.ObservabilityConfig, log logger.Logger, reg prom.Registerer) *Observability {
	o := &Observability{logger: log}

	o.tracerProvider = newTracerProvider(cfg, log)
	otel.SetTracerProvider(o.tracerProvider)

	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Error("Failed to create Prometheus exporter", map[string]interface{}{"error": err.Error()})
		return o
	}

	o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(o.meterProvider)
	o.meter = o.meterProvider.Meter(cfg.ServiceName)

	o.jobCounter, _ = o.meter.Int64Counter(
		"matching_jobs_processed",
		otelmetric.WithDescription("Number of matching jobs processed"),
	)
	o.jobDuration, _ = o.meter.Float64Histogram(
		"matching_jobs_duration",
		otelmetric.WithDescription("Matching job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	o.rankingScored, _ = o.meter.Int64Counter(
		"matching_candidates_scored",
		otelmetric.WithDescription("Candidates scored across ranking calls"),
	)
	o.rankingMatched, _ = o.meter.Int64Counter(
		"matching_results_returned",
		otelmetric.WithDescription("Results returned across ranking calls"),
	)
	return o
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordRanking(ctx context.Context, algorithm string, candidates, matched int) {
	attrs := otelmetric.WithAttributes(attribute.String("algorithm", algorithm))
	if o.rankingScored != nil {
		o.rankingScored.Add(ctx, int64(candidates), attrs)
	}
	if o.rankingMatched != nil {
		o.rankingMatched.Add(ctx, int64(matched), attrs)
	}
}

// Tracer returns a named tracer from the owned provider.
func (o *Observability) Tracer(name string) trace.Tracer {
	if o.tracerProvider == nil {
		return otel.Tracer(name)
	}
	return o.tracerProvider.Tracer(name)
}

func (o *Observability) Shutdown(ctx context.Context) {
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil {
			o.logger.Warn("Meter provider shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			o.logger.Warn("Tracer provider shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
