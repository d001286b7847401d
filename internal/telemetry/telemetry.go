// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package telemetry sets up OpenTelemetry tracing for the ceddbench tool.
//
// Configuration is read from the standard environment variables:
//
//	OTEL_ENABLED                 - enable tracing (default: false)
//	OTEL_SERVICE_NAME            - service name (default: ceddbench)
//	OTEL_SERVICE_VERSION         - service version (default: unknown)
//	OTEL_EXPORTER_OTLP_ENDPOINT  - OTLP collector endpoint
//	OTEL_EXPORTER_OTLP_PROTOCOL  - grpc or http/protobuf (default: grpc)
//	OTEL_EXPORTER_OTLP_HEADERS   - headers, as in key1=value1,key2=value2
//	OTEL_EXPORTER_OTLP_INSECURE  - disable TLS (default: false)
//	OTEL_TRACES_SAMPLER_ARG      - ratio of sampled traces (default: 1)
package telemetry

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer used for BDD computations.
const TracerName = "github.com/dalzilio/cedd"

// Config holds the OpenTelemetry configuration.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Protocol       string
	Headers        map[string]string
	Insecure       bool
	Ratio          float64
}

// LoadFromEnv loads the configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Enabled:        strings.EqualFold(os.Getenv("OTEL_ENABLED"), "true"),
		ServiceName:    getenv("OTEL_SERVICE_NAME", "ceddbench"),
		ServiceVersion: getenv("OTEL_SERVICE_VERSION", "unknown"),
		Endpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Protocol:       getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		Headers:        parsePairs(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
		Insecure:       strings.EqualFold(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"), "true"),
		Ratio:          parseRatio(os.Getenv("OTEL_TRACES_SAMPLER_ARG")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parsePairs parses a comma-separated list of key=value pairs. Malformed
// entries are ignored.
func parsePairs(s string) map[string]string {
	res := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		res[k] = strings.TrimSpace(v)
	}
	return res
}

// parseRatio returns a sampling ratio in [0, 1], with 1 as default.
func parseRatio(s string) float64 {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// ShutdownFunc flushes and stops the TracerProvider.
type ShutdownFunc func(ctx context.Context) error

func noop(context.Context) error { return nil }

// Init sets up the global TracerProvider. When tracing is disabled we keep the
// default no-op provider of otel.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noop, nil
	}
	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion)))
	if err != nil {
		return noop, errors.Wrap(err, "cannot build telemetry resource")
	}
	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return noop, errors.Wrap(err, "cannot create trace exporter")
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Ratio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// Start starts a span for the computation of a problem using the global
// TracerProvider.
func Start(ctx context.Context, problem string, size int) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, problem,
		trace.WithAttributes(
			attribute.String("cedd.problem", problem),
			attribute.Int("cedd.size", size),
		))
}
