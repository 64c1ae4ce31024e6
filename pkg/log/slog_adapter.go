package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes journal events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("component", event.Component.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Op != "" {
		attrs = append(attrs, slog.String("op", event.Op))
	}
	if event.Handle != nil {
		attrs = append(attrs, slog.Int("handle", *event.Handle))
	}
	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}
	if event.PeerID != "" {
		attrs = append(attrs, slog.String("peer_id", event.PeerID))
	}

	switch {
	case event.Request != nil:
		if event.Request.Scope != "" {
			attrs = append(attrs, slog.String("scope", event.Request.Scope))
		}
		if event.Request.Detail != "" {
			attrs = append(attrs, slog.String("detail", event.Request.Detail))
		}
	case event.Completion != nil:
		attrs = append(attrs, slog.Bool("success", event.Completion.Success))
		if !event.Completion.Success {
			attrs = append(attrs,
				slog.Int("code", int(event.Completion.Code)),
				slog.String("message", event.Completion.Message),
			)
		}
		if event.Completion.Items > 0 {
			attrs = append(attrs, slog.Int("items", event.Completion.Items))
		}
		if event.Completion.Latency != nil {
			attrs = append(attrs, slog.Duration("latency", *event.Completion.Latency))
		}
	case event.Rejection != nil:
		attrs = append(attrs, slog.Int("code", event.Rejection.Code))
	case event.Registry != nil:
		attrs = append(attrs,
			slog.String("change", event.Registry.Change),
			slog.String("collection", event.Registry.Collection),
		)
		if event.Registry.Name != "" {
			attrs = append(attrs, slog.String("name", event.Registry.Name))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "journal", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
