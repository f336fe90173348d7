package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	LogLevelDebug:   0,
	LogLevelInfo:    1,
	LogLevelWarning: 2,
	LogLevelError:   3,
}

// ParseLevel maps a level name to a LogLevel, defaulting to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarning
	case "ERROR":
		return LogLevelError
	}
	return LogLevelInfo
}

// Logger writes leveled dashboard session entries
type Logger struct {
	logger  *log.Logger
	level   LogLevel
	logFile *os.File
	logPath string
	mu      sync.Mutex
	now     func() time.Time
}

// NewLogger creates a logger writing to w. Entries below level are dropped.
func NewLogger(w io.Writer, level LogLevel) *Logger {
	if _, ok := levelRank[level]; !ok {
		level = LogLevelInfo
	}
	return &Logger{
		logger: log.New(w, "", 0),
		level:  level,
		now:    time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLogger(io.Discard, LogLevelError)
}

// NewSessionLogger creates a file logger under dir for the given session name
func NewSessionLogger(dir, session string, level LogLevel) (*Logger, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", session, time.Now().Format("2006-01-02"))
	logPath := filepath.Join(dir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewLogger(file, level)
	l.logFile = file
	l.logPath = logPath
	l.writeSessionBanner("DASHBOARD SESSION STARTED")
	return l, nil
}

func (l *Logger) writeSessionBanner(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rule := strings.Repeat("=", 80)
	l.logger.Printf("%s\n%s\nAt: %s\n%s\n", rule, title, l.now().Format("2006-01-02 15:04:05"), rule)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	if l == nil || levelRank[level] < levelRank[l.level] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := l.now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] [%s] %s", timestamp, level, fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Log(LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close writes the session footer and closes the log file, if any
func (l *Logger) Close() error {
	if l == nil || l.logFile == nil {
		return nil
	}
	l.writeSessionBanner("DASHBOARD SESSION ENDED")
	return l.logFile.Close()
}

// Path returns the log file path, empty for writer-backed loggers
func (l *Logger) Path() string {
	return l.logPath
}
