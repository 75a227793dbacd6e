package logging

import (
	"context"
	"log/slog"

	"detectivequest/internal/errors"
)

type attrsKey struct{}

// ContextHandler adds the attributes stored with [WithAttrs] to every record, so that a tool call or a play session
// can tag all log lines emitted while it runs.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{Handler: h}
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	if err := h.Handler.Handle(ctx, r); err != nil {
		return errors.Wrap(err, "handle log record")
	}
	return nil
}

// WithAttrs keeps loggers derived with [slog.Logger.With] context aware.
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// WithAttrs returns a copy of ctx whose log records also carry attr. Contexts derived from the same parent do not
// see each other's attributes.
func WithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	prev, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	attrs := make([]slog.Attr, 0, len(prev)+len(attr))
	attrs = append(append(attrs, prev...), attr...)
	return context.WithValue(ctx, attrsKey{}, attrs)
}
