// Package tracing wraps debounced functions and snapshot stores in
// OpenTelemetry spans.
//
// The tracer comes from the global OpenTelemetry tracer provider. Configure
// it in your main() before wiring anything:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
//
// Without a configured provider every span is a no-op, so the wrappers are
// safe to leave in place.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/bind/pkg/snapshot"
)

// Default tracer name for the binding layer.
const defaultTracerName = "bind"

// Config configures the tracing wrappers.
type Config struct {
	// TracerName is the name of the tracer (default: "bind").
	TracerName string

	// Attributes are appended to every span the wrapper creates.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// Option configures the tracing wrappers.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithAttributes appends static attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(c *Config) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// newConfig resolves options against defaults and the global provider.
func newConfig(opts ...Option) Config {
	cfg := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)
	return cfg
}

// Func wraps fn so each invocation runs inside a span named name. Use it
// to trace debounced callbacks, which fire from a timer and so carry no
// inbound context:
//
//	save := debounce.New(tracing.Func("order.autosave", saveFn), wait)
func Func[A, R any](name string, fn func(A) R, opts ...Option) func(A) R {
	cfg := newConfig(opts...)

	return func(arg A) R {
		_, span := cfg.tracer.Start(context.Background(), name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(cfg.Attributes...),
		)
		defer span.End()

		r := fn(arg)
		span.SetStatus(codes.Ok, "")
		return r
	}
}

// Store wraps a snapshot store so every operation runs inside a span with
// the key and payload size recorded, errors included.
func Store(inner snapshot.Store, opts ...Option) snapshot.Store {
	return &tracedStore{inner: inner, cfg: newConfig(opts...)}
}

type tracedStore struct {
	inner snapshot.Store
	cfg   Config
}

func (s *tracedStore) Save(ctx context.Context, key string, data []byte) error {
	ctx, span := s.start(ctx, "snapshot.save", key,
		attribute.Int("snapshot.bytes", len(data)))
	defer span.End()

	return s.finish(span, s.inner.Save(ctx, key, data))
}

func (s *tracedStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, span := s.start(ctx, "snapshot.load", key)
	defer span.End()

	data, err := s.inner.Load(ctx, key)
	if err == nil {
		span.SetAttributes(attribute.Int("snapshot.bytes", len(data)))
	}
	return data, s.finish(span, err)
}

func (s *tracedStore) Delete(ctx context.Context, key string) error {
	ctx, span := s.start(ctx, "snapshot.delete", key)
	defer span.End()

	return s.finish(span, s.inner.Delete(ctx, key))
}

func (s *tracedStore) start(ctx context.Context, name, key string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := make([]attribute.KeyValue, 0, len(s.cfg.Attributes)+len(attrs)+1)
	all = append(all, attribute.String("snapshot.key", key))
	all = append(all, s.cfg.Attributes...)
	all = append(all, attrs...)

	return s.cfg.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(all...),
	)
}

// finish records the operation outcome on the span and passes the error
// through.
func (s *tracedStore) finish(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
