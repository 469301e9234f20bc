package tracing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_Enabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(true, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer(Name).Start(t.Context(), "wetwire.test")
	span.End()
	require.NoError(t, shutdown(t.Context()))

	assert.Contains(t, buf.String(), `"Name": "wetwire.test"`)
}

func TestInit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(false, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer(Name).Start(t.Context(), "wetwire.test")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()
	require.NoError(t, shutdown(t.Context()))

	assert.Empty(t, buf.String())
}
