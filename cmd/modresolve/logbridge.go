// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// charmSlogHandler adapts a [charmlog.Logger] to [slog.Handler] so the
// resolver's slog debug events render through the same colorized console
// output as the rest of the CLI, instead of slog's default text handler.
type charmSlogHandler struct {
	log   *charmlog.Logger
	attrs []slog.Attr
}

func newCharmSlogHandler(log *charmlog.Logger) *charmSlogHandler {
	return &charmSlogHandler{log: log}
}

func (h *charmSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelDebug
}

func (h *charmSlogHandler) Handle(_ context.Context, record slog.Record) error {
	keyvals := make([]any, 0, 2*(len(h.attrs)+record.NumAttrs()))
	for _, a := range h.attrs {
		keyvals = append(keyvals, a.Key, a.Value.Any())
	}
	record.Attrs(func(a slog.Attr) bool {
		keyvals = append(keyvals, a.Key, a.Value.Any())
		return true
	})

	switch {
	case record.Level >= slog.LevelError:
		h.log.Error(record.Message, keyvals...)
	case record.Level >= slog.LevelWarn:
		h.log.Warn(record.Message, keyvals...)
	case record.Level >= slog.LevelInfo:
		h.log.Info(record.Message, keyvals...)
	default:
		h.log.Debug(record.Message, keyvals...)
	}
	return nil
}

func (h *charmSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &charmSlogHandler{log: h.log, attrs: make([]slog.Attr, 0, len(h.attrs)+len(attrs))}
	next.attrs = append(next.attrs, h.attrs...)
	next.attrs = append(next.attrs, attrs...)
	return next
}

func (h *charmSlogHandler) WithGroup(_ string) slog.Handler {
	return h
}

// resolverLogger returns the slog.Logger the resolver should log through,
// routed into the console logger's own level and color scheme.
func resolverLogger() *slog.Logger {
	return slog.New(newCharmSlogHandler(log))
}
