package logging

import (
	"fmt"
	"strings"
)

// Level orders log severities. Entries below a logger's level are dropped.
type Level int

const (
	// DebugLevel logs every merge decision and is usually disabled
	DebugLevel Level = iota
	// InfoLevel is the default
	InfoLevel
	// WarnLevel logs recoverable problems such as a failed restart
	WarnLevel
	// ErrorLevel logs failures that abort a run
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel converts a level name to a Level, case-insensitively. Unknown
// names map to InfoLevel so a mistyped LOG_LEVEL never silences a run.
func ParseLevel(s string) Level {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return WarnLevel
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i)
		}
	}
	return InfoLevel
}

// Format selects how a StreamLogger renders entries.
type Format int

const (
	// JSONFormat writes one JSON object per line.
	JSONFormat Format = iota
	// TextFormat writes "time LEVEL msg key=value ..." lines for terminals.
	TextFormat
)

func (f Format) String() string {
	if f == TextFormat {
		return "text"
	}
	return "json"
}

// ParseFormat accepts "json", "text" or the empty string, which means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSONFormat, nil
	case "text":
		return TextFormat, nil
	}
	return JSONFormat, fmt.Errorf("unknown log format %q", s)
}

// Field is one structured key-value pair.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logging interface used across the module.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger that adds fields to every entry.
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// Entry is the decoded shape of a JSON log line.
type Entry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (n NopLogger) With(...Field) Logger { return n }
func (NopLogger) SetLevel(Level)         {}
func (NopLogger) GetLevel() Level        { return InfoLevel }

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() Logger {
	return NopLogger{}
}
