package observability

import (
	"skill-match-workers/internal/common/config"
	"skill-match-workers/internal/common/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newTracerProvider(cfg config.ObservabilityConfig, log logger.Logger) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))
	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if cfg.JaegerEndpoint != "" {
		exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			log.Error("Failed to create Jaeger exporter, spans will not be exported", map[string]interface{}{
				"endpoint": cfg.JaegerEndpoint,
				"error":    err.Error(),
			})
		} else {
			opts = append(opts, sdktrace.WithBatcher(exporter))
		}
	}

	return sdktrace.NewTracerProvider(opts...)
}
