// Package logging provides structured logging with component scoping and
// trace ids. Output is JSON by default for log shipping, switchable to plain
// text for local development. The analysis packages stay log-free; only the
// storage, API, and command surfaces log.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Level is a logging level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger emits structured log entries. Fields are alternating key/value
// pairs, matching the call style used across the codebase.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})

	WithComponent(component string) Logger
	WithTraceID(traceID string) Logger
}

// Entry is one serialized log line.
type Entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	TraceID   string                 `json:"trace_id,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

type structuredLogger struct {
	level     Level
	component string
	traceID   string
	useJSON   bool
}

// New creates a logger. Format is "json" or "text".
func New(level Level, format string) Logger {
	return &structuredLogger{
		level:   level,
		useJSON: !strings.EqualFold(format, "text"),
	}
}

// NewTraceID returns a fresh trace id for request or scan scoping.
func NewTraceID() string {
	return uuid.New().String()
}

func (l *structuredLogger) WithComponent(component string) Logger {
	clone := *l
	clone.component = component
	return &clone
}

func (l *structuredLogger) WithTraceID(traceID string) Logger {
	clone := *l
	clone.traceID = traceID
	return &clone
}

func (l *structuredLogger) Debug(msg string, fields ...interface{}) {
	l.emit(LevelDebug, msg, fields)
}

func (l *structuredLogger) Info(msg string, fields ...interface{}) {
	l.emit(LevelInfo, msg, fields)
}

func (l *structuredLogger) Warn(msg string, fields ...interface{}) {
	l.emit(LevelWarn, msg, fields)
}

func (l *structuredLogger) Error(msg string, fields ...interface{}) {
	l.emit(LevelError, msg, fields)
}

func (l *structuredLogger) emit(level Level, msg string, fields []interface{}) {
	if level < l.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Component: l.component,
		TraceID:   l.traceID,
		Fields:    pairFields(fields),
	}

	if l.useJSON {
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log marshal failed: %v\n", err)
			return
		}
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	parts := []string{entry.Timestamp, "[" + entry.Level + "]"}
	if entry.Component != "" {
		parts = append(parts, "component="+entry.Component)
	}
	if entry.TraceID != "" {
		parts = append(parts, "trace="+entry.TraceID)
	}
	parts = append(parts, entry.Message)
	for k, v := range entry.Fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	fmt.Fprintln(os.Stderr, strings.Join(parts, " "))
}

// pairFields folds alternating key/value arguments into a map. A trailing
// unpaired value is kept under a positional key rather than dropped.
func pairFields(fields []interface{}) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]interface{}, (len(fields)+1)/2)
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			m[fmt.Sprintf("%v", fields[i])] = fields[i+1]
		} else {
			m[fmt.Sprintf("field_%d", i)] = fields[i]
		}
	}
	return m
}
