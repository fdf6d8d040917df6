package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartSpanInheritsTraceContext(t *testing.T) {
	tracer := New("test", zap.NewNop())
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "outer")
	child, _ := tracer.StartSpan(ctx, "inner")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
}

func TestCloseDrainsAndStopsCollector(t *testing.T) {
	tracer := New("test", zap.NewNop())

	for i := 0; i < 10; i++ {
		span, _ := tracer.StartSpan(context.Background(), "op")
		span.Finish()
		tracer.Submit(span)
	}

	// Close must return only after the collector has consumed the
	// buffered spans and exited.
	tracer.Close()

	_, open := <-tracer.done
	require.False(t, open)
}
