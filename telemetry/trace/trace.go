//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package trace provides distributed tracing for the careerspark backend.
// It integrates with OpenTelemetry; until Start is called the global
// tracer is a no-op, so instrumented code needs no configuration to run.
package trace

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "careerspark-backend"
	instrumentName = "github.com/careerspark/careerspark"

	// ProtocolGRPC exports OTLP traces over gRPC (the default).
	ProtocolGRPC = "grpc"
	// ProtocolHTTP exports OTLP traces over HTTP.
	ProtocolHTTP = "http"
)

// Span aliases the OpenTelemetry span interface for instrumented callers.
type Span = trace.Span

// TracerProvider is the global tracer provider for telemetry.
var TracerProvider trace.TracerProvider = noop.NewTracerProvider()

// Tracer is the global tracer instance for telemetry.
var Tracer trace.Tracer = TracerProvider.Tracer("")

// Option configures tracer startup.
type Option func(*options)

type options struct {
	endpoint string
	protocol string
}

// WithEndpoint sets the OTLP endpoint (host:port) the exporter connects to.
// When unset, OTEL_EXPORTER_OTLP_TRACES_ENDPOINT and
// OTEL_EXPORTER_OTLP_ENDPOINT are consulted before falling back to
// localhost defaults.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithProtocol sets the export protocol, "grpc" (default) or "http".
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// Start configures the global tracer to export OTLP traces and returns a
// cleanup function that flushes and shuts the provider down.
func Start(ctx context.Context, opt ...Option) (func() error, error) {
	opts := &options{protocol: ProtocolGRPC}
	for _, o := range opt {
		o(opts)
	}
	if opts.endpoint == "" {
		opts.endpoint = tracesEndpoint(opts.protocol)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdktrace.SpanExporter
	switch opts.protocol {
	case ProtocolHTTP:
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(opts.endpoint),
			otlptracehttp.WithInsecure(),
		)
	default:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(opts.endpoint),
			otlptracegrpc.WithInsecure(),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	TracerProvider = provider
	Tracer = otel.Tracer(instrumentName)

	return func() error {
		if err := provider.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("failed to shutdown TracerProvider: %w", err)
		}
		return nil
	}, nil
}

func tracesEndpoint(protocol string) string {
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	switch protocol {
	case ProtocolHTTP:
		return "localhost:4318"
	default:
		return "localhost:4317"
	}
}
