// Package tracing sets up the OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Name is the instrumentation scope of every span the tool creates.
const Name = "github.com/lex00/wetwire-sls-go"

// Init installs a global tracer provider. When enabled, spans are written to out as
// JSON; otherwise they are sampled out. The returned function flushes and stops the
// provider.
func Init(enabled bool, out io.Writer) (func(context.Context) error, error) {
	opts := []trace.TracerProviderOption{}

	if enabled {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(out), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("could not create trace exporter: %w", err)
		}
		opts = append(opts, trace.WithSpanProcessor(trace.NewSimpleSpanProcessor(exporter)))
	} else {
		opts = append(opts, trace.WithSampler(trace.NeverSample()))
	}

	tp := trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
