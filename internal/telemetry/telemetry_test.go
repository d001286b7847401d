// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"OTEL_ENABLED", "OTEL_SERVICE_NAME", "OTEL_EXPORTER_OTLP_PROTOCOL", "OTEL_EXPORTER_OTLP_HEADERS", "OTEL_TRACES_SAMPLER_ARG"} {
			t.Setenv(k, "")
		}
		cfg := LoadFromEnv()
		assert.False(t, cfg.Enabled)
		assert.Equal(t, "ceddbench", cfg.ServiceName)
		assert.Equal(t, "grpc", cfg.Protocol)
		assert.Equal(t, 1.0, cfg.Ratio)
		assert.Empty(t, cfg.Headers)
	})

	t.Run("custom", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "TRUE")
		t.Setenv("OTEL_SERVICE_NAME", "bench")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
		t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
		t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "Authorization=Bearer a=b, X-Team = cedd,broken")
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")
		cfg := LoadFromEnv()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "bench", cfg.ServiceName)
		assert.Equal(t, "http/protobuf", cfg.Protocol)
		assert.Equal(t, 0.25, cfg.Ratio)
		assert.Equal(t, map[string]string{"Authorization": "Bearer a=b", "X-Team": "cedd"}, cfg.Headers)
	})
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"", 1},
		{"0.5", 0.5},
		{"0", 0},
		{"invalid", 1},
		{"-0.5", 0},
		{"1.5", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseRatio(tt.input), "ratio %q", tt.input)
	}
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Init(ctx, Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(ctx))
}

func TestNewExporter(t *testing.T) {
	for _, protocol := range []string{"grpc", "http/protobuf"} {
		t.Run(protocol, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			exp, err := newExporter(ctx, Config{Protocol: protocol, Endpoint: "http://localhost:4317"})
			require.NoError(t, err)
			require.NotNil(t, exp)
			assert.NoError(t, exp.Shutdown(ctx))
		})
	}
}

func TestStart(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	defer otel.SetTracerProvider(prev)

	_, span := Start(context.Background(), "nqueens", 8)
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "nqueens", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("cedd.problem", "nqueens"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("cedd.size", 8))
}
