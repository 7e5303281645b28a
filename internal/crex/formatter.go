package crex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Formatter renders a single log record (plus any grouped/inherited
// attributes) as a line of output.
type Formatter interface {
	Format(r slog.Record, groups []string, attrs []slog.Attr) []byte
}

// PrettyFormatter renders human-readable, optionally ANSI-colored lines
// suitable for an interactive terminal.
type PrettyFormatter struct {
	color   bool
	verbose bool
}

// NewPrettyFormatter creates a formatter. color should reflect whether the
// destination stream is an interactive terminal.
func NewPrettyFormatter(color bool) *PrettyFormatter {
	return &PrettyFormatter{color: color}
}

// SetVerbose controls whether each line is prefixed with an RFC 3339
// timestamp (second precision).
func (f *PrettyFormatter) SetVerbose(verbose bool) {
	f.verbose = verbose
}

var levelColor = map[slog.Level]string{
	slog.LevelDebug: "\x1b[90m",
	slog.LevelInfo:  "\x1b[36m",
	slog.LevelWarn:  "\x1b[33m",
	slog.LevelError: "\x1b[31m",
}

func (f *PrettyFormatter) Format(r slog.Record, groups []string, attrs []slog.Attr) []byte {
	var buf bytes.Buffer

	if f.verbose {
		buf.WriteString(r.Time.Format(time.RFC3339))
		buf.WriteByte(' ')
	}

	level := r.Level.String()
	if f.color {
		if c, ok := levelColor[r.Level]; ok {
			level = c + level + "\x1b[0m"
		}
	}
	buf.WriteString(level)
	buf.WriteByte(' ')

	if len(groups) > 0 {
		buf.WriteString(strings.Join(groups, "."))
		buf.WriteString(": ")
	}

	buf.WriteString(r.Message)

	for _, a := range attrs {
		fmt.Fprintf(&buf, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&buf, " %s=%v", a.Key, a.Value)
		return true
	})

	buf.WriteByte('\n')
	return buf.Bytes()
}

// JSONFormatter renders each record as a single JSON object, suitable for
// non-interactive output (piped logs, daemon stdout captured by a
// supervisor).
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

func (f *JSONFormatter) Format(r slog.Record, groups []string, attrs []slog.Attr) []byte {
	entry := make(map[string]any, 4+len(attrs))
	entry["time"] = r.Time.Format(time.RFC3339Nano)
	entry["level"] = r.Level.String()
	entry["msg"] = r.Message
	if len(groups) > 0 {
		entry["group"] = strings.Join(groups, ".")
	}

	for _, a := range attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	b, err := json.Marshal(entry)
	if err != nil {
		return []byte(fmt.Sprintf(`{"level":"ERROR","msg":"log encode failed: %s"}`, err) + "\n")
	}
	return append(b, '\n')
}
