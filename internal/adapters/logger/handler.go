package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/ui/output"
	"go.trai.ch/tcbuild/internal/ui/style"
)

// ProjectKey is the attribute that scopes a record to a project.
// Its value is rendered as a "<project>: " prefix instead of a key=value pair.
const ProjectKey = "project"

// PrettyHandler is a slog.Handler for build transcripts.
//
// A record is rendered as an optional level icon, a project scope, the message
// and any remaining attributes. The scope comes from a ProjectKey attribute or
// from a leading "<project>: " in the message, and is printed bold. Lines
// starting with domain.DryRunPrefix describe skipped operations and are
// printed faint. With the Ascii profile the text is left unchanged.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	scope  string
	fields []string
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders r as a single transcript entry.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	scope := h.scope
	fields := append([]string(nil), h.fields...)
	r.Attrs(func(attr slog.Attr) bool {
		if s, ok := h.scopeOf(attr); ok {
			scope = s
			return true
		}
		fields = append(fields, h.field(attr))
		return true
	})

	text := r.Message
	if scope == "" {
		scope, text = splitScope(text)
	}
	if len(fields) > 0 {
		text += " " + strings.Join(fields, " ")
	}

	var b strings.Builder
	switch {
	case r.Level >= slog.LevelError:
		b.WriteString(h.paint(style.Cross+" ", style.Red).String())
	case r.Level >= slog.LevelWarn:
		b.WriteString(h.paint(style.Warning+" ", style.Yellow).String())
	}
	if scope != "" {
		b.WriteString(h.out.String(scope + ":").Bold().String())
		b.WriteByte(' ')
	}
	b.WriteString(h.body(r.Level, text))
	b.WriteByte('\n')

	_, err := h.out.WriteString(b.String())
	return err
}

func (h *PrettyHandler) body(level slog.Level, text string) string {
	switch {
	case level >= slog.LevelError:
		return h.paint(text, style.Red).String()
	case level >= slog.LevelWarn:
		return h.paint(text, style.Yellow).String()
	case strings.HasPrefix(text, domain.DryRunPrefix):
		marker := strings.TrimSpace(domain.DryRunPrefix)
		rest := strings.TrimPrefix(text, domain.DryRunPrefix)
		return h.paint(marker, style.Slate).Bold().String() + " " +
			h.out.String(rest).Faint().String()
	default:
		return h.paint(text, style.Slate).String()
	}
}

func (h *PrettyHandler) paint(text string, c lipgloss.Color) termenv.Style {
	return h.out.String(text).Foreground(termenv.RGBColor(string(c)))
}

func (h *PrettyHandler) scopeOf(attr slog.Attr) (string, bool) {
	if h.prefix != "" || attr.Key != ProjectKey {
		return "", false
	}
	return attr.Value.String(), true
}

func (h *PrettyHandler) field(attr slog.Attr) string {
	return h.prefix + attr.Key + "=" + attr.Value.String()
}

// WithAttrs returns a new Handler with the given attributes applied to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		if s, ok := h.scopeOf(attr); ok {
			next.scope = s
			continue
		}
		next.fields = append(next.fields, h.field(attr))
	}
	return next
}

// WithGroup returns a new Handler qualifying later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		scope:  h.scope,
		fields: append([]string(nil), h.fields...),
		prefix: h.prefix,
	}
}

// splitScope separates a leading "<project>: " from msg. A project name is a
// single lowercase word, so messages such as "Error: ..." are left alone.
func splitScope(msg string) (scope, rest string) {
	name, rest, ok := strings.Cut(msg, ": ")
	if !ok || !isProjectName(name) {
		return "", msg
	}
	return name, rest
}

func isProjectName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
