package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpansAreExported(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("postgen", "test", exporter))

	ctx, parent := StartSpan(context.Background(), "request", "SERVER")
	_, child := StartSpan(ctx, "persist", "CLIENT")
	child.WithAttributes(map[string]string{"table": "PostIdeas"})
	child.SetBool("configured", true)
	EndSpan(child, errors.New("boom"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "persist", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, codes.Ok, spans[1].Status.Code)

	require.NoError(t, Shutdown(context.Background()))
}

func TestNilSpanIsSafe(t *testing.T) {
	var sp *Span
	sp.WithAttributes(map[string]string{"a": "b"})
	sp.SetBool("x", true)
	sp.SetStatus(nil)
	EndSpan(sp, nil)
}
