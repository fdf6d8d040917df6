// Package tracing correlates log lines belonging to one request. It
// follows OpenTelemetry concepts (trace and span ids propagated via
// headers) with a minimal implementation tailored to a single service.
package tracing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TraceID identifies one request across services.
type TraceID string

// SpanID identifies one operation within a trace.
type SpanID string

// Span records a single traced operation.
type Span struct {
	TraceID    TraceID
	SpanID     SpanID
	ParentID   SpanID
	Name       string
	Service    string
	StartTime  time.Time
	Duration   time.Duration
	Tags       map[string]string
	Error      error
	StatusCode int
}

// Tracer collects completed spans and logs them.
type Tracer struct {
	service string
	logger  *zap.Logger
	spans   chan *Span
	done    chan struct{}
}

// New creates a tracer that logs completed spans through logger.
func New(service string, logger *zap.Logger) *Tracer {
	t := &Tracer{
		service: service,
		logger:  logger,
		spans:   make(chan *Span, 1000),
		done:    make(chan struct{}),
	}
	go t.collect()
	return t
}

// Close drains buffered spans and stops the collector goroutine. No
// Submit may happen after Close; callers shut the request surface down
// first.
func (t *Tracer) Close() {
	close(t.spans)
	<-t.done
}

// StartSpan opens a span, inheriting trace context from ctx when present.
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	if traceID == "" {
		traceID = TraceID(newID())
	}
	parentID, _ := ctx.Value(spanIDKey).(SpanID)

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(newID()),
		ParentID:  parentID,
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	ctx = context.WithValue(ctx, traceIDKey, traceID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// SetTag attaches a key/value pair to the span.
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError records a failure on the span.
func (s *Span) SetError(err error) {
	s.Error = err
}

// Finish closes the span.
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// Submit hands a finished span to the collector. Spans are dropped when
// the buffer is full rather than blocking the request path.
func (t *Tracer) Submit(span *Span) {
	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
		)
	}
}

func (t *Tracer) collect() {
	defer close(t.done)
	for span := range t.spans {
		fields := []zap.Field{
			zap.String("trace_id", string(span.TraceID)),
			zap.String("span_id", string(span.SpanID)),
			zap.String("operation", span.Name),
			zap.Duration("duration", span.Duration),
			zap.Int("status", span.StatusCode),
		}
		if span.ParentID != "" {
			fields = append(fields, zap.String("parent_id", string(span.ParentID)))
		}
		if span.Error != nil {
			fields = append(fields, zap.Error(span.Error))
			t.logger.Error("request completed with error", fields...)
		} else {
			t.logger.Info("request completed", fields...)
		}
	}
}

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// GetTraceID retrieves the trace id from ctx, if any.
func GetTraceID(ctx context.Context) TraceID {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	return traceID
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
