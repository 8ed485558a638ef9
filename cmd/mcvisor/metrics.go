package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// setupMetrics starts OTLP metric export when an endpoint is configured.
// Without one it returns the global (no-op) provider. The returned shutdown
// function flushes pending metrics and is always non-nil.
func setupMetrics(ctx context.Context, mc MetricsConfig) (metric.MeterProvider, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if mc.Endpoint == "" {
		return otel.GetMeterProvider(), noop, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(mc.Endpoint)}
	if mc.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, noop, fmt.Errorf("metric exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(mc.ServiceName))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mc.Interval))),
	)
	return mp, mp.Shutdown, nil
}
