// Package log provides structured logging for spherenav.
// Lines carry a level, a category and key=value fields; logging stays off
// unless enabled with --debug or SPHERENAV_DEBUG.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/spherenav/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a case-insensitive level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelDebug, fmt.Errorf("unknown log level %q", s)
	}
}

// Category groups related log messages.
type Category string

const (
	CatNav     Category = "nav"     // State machine transitions
	CatRoute   Category = "route"   // Route table and resolver
	CatGraph   Category = "graph"   // Adjacency graph and pathfinding
	CatLink    Category = "link"    // Deep-link encode/decode
	CatConfig  Category = "config"  // Configuration loading/saving
	CatCache   Category = "cache"   // Cache operations
	CatDB      Category = "db"      // Location store
	CatWatcher Category = "watcher" // Deep-link inbox watcher
	CatTrace   Category = "trace"   // Tracing provider
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

func install(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Init opens path for appending and installs it as the global logger.
// Returns a cleanup function that closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-chosen debug log path
	if err != nil {
		return nil, err
	}
	install(newLogger(f))
	return func() { _ = f.Close() }, nil
}

// InitWithTeaLog opens the log file through tea.LogToFile, which also routes
// the standard library logger into it.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	install(newLogger(f))
	return func() { _ = f.Close() }, nil
}

// InitWriter installs a logger writing to w. Used by tests and by hosts that
// already own an output stream.
func InitWriter(w io.Writer) {
	install(newLogger(w))
}

// Reset removes the global logger; subsequent calls are no-ops.
func Reset() {
	if l := current(); l != nil && l.broker != nil {
		l.broker.Close()
	}
	install(nil)
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [WARN] [nav] message key=value key2=value2
	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	entry := b.String()

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry)
	}
	if l.broker != nil {
		l.broker.Publish(pubsub.CreatedEvent, entry)
	}
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// NewListener subscribes to log lines until ctx is cancelled.
// Returns nil when no logger is installed.
func NewListener(ctx context.Context) *pubsub.Listener[string] {
	l := current()
	if l == nil || l.broker == nil {
		return nil
	}
	return pubsub.NewListener(ctx, l.broker)
}
