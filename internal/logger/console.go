// Package logger provides diagnostic logging for ntime.
//
// Diagnostics go to stderr and are filtered by level so that a default run
// prints nothing besides the timing result. Implementations are thread-safe.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger writes diagnostics to a writer with [HH:MM:SS] timestamps.
// Level tags are coloured only when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is an *os.File attached to a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogRunStart logs the program about to be spawned at debug level.
// Format: "[HH:MM:SS] [DEBUG] spawning <program> argv=[...]"
func (cl *ConsoleLogger) LogRunStart(program string, argv []string) {
	cl.logWithLevel("DEBUG", fmt.Sprintf("spawning %s argv=%q", program, argv))
}

// LogRunComplete logs the outcome of a timed child at debug level.
func (cl *ConsoleLogger) LogRunComplete(pid, exitCode int, elapsed time.Duration) {
	cl.logWithLevel("DEBUG", fmt.Sprintf("child %d exited with status %d after %s", pid, exitCode, elapsed))
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorLevel wraps a level tag in its colour. Colour is forced on because the
// caller has already decided the writer is a terminal.
func colorLevel(level string) string {
	var c *color.Color
	switch level {
	case "TRACE":
		c = color.New(color.FgHiBlack)
	case "DEBUG":
		c = color.New(color.FgCyan)
	case "INFO":
		c = color.New(color.FgBlue)
	case "WARN":
		c = color.New(color.FgYellow)
	case "ERROR":
		c = color.New(color.FgRed)
	default:
		return level
	}
	c.EnableColor()
	return c.Sprint(level)
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// NoOpLogger is a Logger implementation that discards all log messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogDebug(string)                        {}
func (n *NoOpLogger) LogWarn(string)                         {}
func (n *NoOpLogger) LogRunStart(string, []string)           {}
func (n *NoOpLogger) LogRunComplete(int, int, time.Duration) {}
