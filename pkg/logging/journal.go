package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

func journalAvailable() bool {
	return journal.Enabled()
}

// journalHandler sends slog records to the systemd journal with attrs as
// journal fields.
type journalHandler struct {
	level slog.Level
	attrs []slog.Attr
	group string
	send  func(message string, priority journal.Priority, vars map[string]string) error
}

func newJournalHandler(level slog.Level) *journalHandler {
	return &journalHandler{level: level, send: journal.Send}
}

func (h *journalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *journalHandler) Handle(_ context.Context, r slog.Record) error {
	vars := make(map[string]string, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		vars[fieldName(h.group, a.Key)] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		vars[fieldName(h.group, a.Key)] = a.Value.String()
		return true
	})
	return h.send(r.Message, priorityOf(r.Level), vars)
}

func (h *journalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &out
}

func (h *journalHandler) WithGroup(name string) slog.Handler {
	out := *h
	if out.group != "" {
		out.group += "_"
	}
	out.group += name
	return &out
}

func priorityOf(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// fieldName maps an attr key to a journal field name: uppercase, [A-Z0-9_]
// only, starting with a letter.
func fieldName(group, key string) string {
	if group != "" {
		key = group + "_" + key
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(key) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "F_" + name
	}
	return name
}
