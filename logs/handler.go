package logs

import (
	"context"
	"crypto/rand"
	"log/slog"
)

// Span tags every record logged under one context.
type Span string

type spanKey struct{}

// SpanOf returns the span carried by ctx, if any.
func SpanOf(ctx context.Context) (Span, bool) {
	s, ok := ctx.Value(spanKey{}).(Span)
	return s, ok
}

// NewSpan returns a context carrying a fresh span.
func NewSpan(ctx context.Context) (context.Context, Span) {
	span := Span(rand.Text())
	return context.WithValue(ctx, spanKey{}, span), span
}

// Handler adds the context span to each record.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if span, ok := SpanOf(ctx); ok {
		record.Add("span", string(span))
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}
