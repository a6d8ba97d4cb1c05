package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sink serializes writes from a logger and all of its children, so
// concurrent restarts never interleave partial lines.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

// StreamLogger writes one line per entry in the configured Format.
type StreamLogger struct {
	out    *sink
	format Format
	level  Level
	fields []Field
	now    func() time.Time
}

// NewLogger returns a logger that writes entries at or above level to w.
func NewLogger(w io.Writer, level Level, format Format) *StreamLogger {
	return &StreamLogger{
		out:    &sink{w: w},
		format: format,
		level:  level,
		now:    time.Now,
	}
}

// NewJSONLogger is NewLogger with JSONFormat.
func NewJSONLogger(w io.Writer, level Level) *StreamLogger {
	return NewLogger(w, level, JSONFormat)
}

// NewTextLogger is NewLogger with TextFormat.
func NewTextLogger(w io.Writer, level Level) *StreamLogger {
	return NewLogger(w, level, TextFormat)
}

func (l *StreamLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *StreamLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *StreamLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *StreamLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With returns a child that starts at the parent's level and shares its
// writer. Changing the child's level leaves the parent untouched.
func (l *StreamLogger) With(fields ...Field) Logger {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &StreamLogger{
		out:    l.out,
		format: l.format,
		level:  l.level,
		fields: merged,
		now:    l.now,
	}
}

func (l *StreamLogger) SetLevel(level Level) {
	l.out.mu.Lock()
	l.level = level
	l.out.mu.Unlock()
}

func (l *StreamLogger) GetLevel() Level {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return l.level
}

func (l *StreamLogger) log(level Level, msg string, fields []Field) {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	if level < l.level {
		return
	}

	// Later fields win, so a call can override a With field of the same key.
	values := make(map[string]any, len(l.fields)+len(fields))
	for _, f := range l.fields {
		values[f.Key] = f.Value
	}
	for _, f := range fields {
		values[f.Key] = f.Value
	}
	e := Entry{
		Time:    l.now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if len(values) > 0 {
		e.Fields = values
	}

	var buf bytes.Buffer
	if l.format == TextFormat {
		encodeText(&buf, e)
	} else if err := json.NewEncoder(&buf).Encode(e); err != nil {
		buf.Reset()
		fmt.Fprintf(&buf, "%s %s %s log_error=%q\n", e.Time, e.Level, strconv.Quote(msg), err.Error())
	}
	l.out.w.Write(buf.Bytes())
}

// encodeText renders e with keys in sorted order.
func encodeText(buf *bytes.Buffer, e Entry) {
	fmt.Fprintf(buf, "%s %-5s %s", e.Time, e.Level, e.Message)
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(textValue(e.Fields[k]))
	}
	buf.WriteByte('\n')
}

func textValue(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		s = x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

var (
	defaultLogger Logger
	defaultMu     sync.Mutex
)

// DefaultLogger returns the process-wide logger. On first use it writes to
// stderr with the level from LOG_LEVEL and the format from LOG_FORMAT.
// Stdout is left to reports.
func DefaultLogger() Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		format, err := ParseFormat(os.Getenv("LOG_FORMAT"))
		if err != nil {
			format = JSONFormat
		}
		defaultLogger = NewLogger(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")), format)
	}
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger.
func SetDefaultLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}
