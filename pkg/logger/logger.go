package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level represents the severity of a log message
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelColors = map[Level]*color.Color{
	DebugLevel: color.New(color.FgHiBlack),
	InfoLevel:  color.New(color.FgGreen),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
	FatalLevel: color.New(color.FgRed, color.Bold),
}

var levelNames = map[Level]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO ",
	WarnLevel:  "WARN ",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
}

var (
	prefixColor  = color.New(color.FgCyan)
	fieldColor   = color.New(color.FgHiBlack)
	timeColor    = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen, color.Bold)
	sectionColor = color.New(color.FgCyan, color.Bold)
)

// Logger is the leveled logger used across the simulation packages.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithPrefix(prefix string) Logger
}

// Config holds logger configuration
type Config struct {
	Level    Level
	Writer   io.Writer
	NoColor  bool
	ShowTime bool
}

type logger struct {
	mu       sync.Mutex
	level    Level
	writer   io.Writer
	fields   map[string]interface{}
	prefix   string
	noColor  bool
	showTime bool
}

var defaultLogger = New()

// New creates a logger writing to stdout at info level.
func New() Logger {
	return NewWithConfig(Config{Level: InfoLevel, Writer: os.Stdout, ShowTime: true})
}

// NewWithConfig creates a logger with custom configuration.
func NewWithConfig(cfg Config) Logger {
	return &logger{
		level:    cfg.Level,
		writer:   cfg.Writer,
		fields:   make(map[string]interface{}),
		noColor:  cfg.NoColor,
		showTime: cfg.ShowTime,
	}
}

// SetLevel sets the global log level
func SetLevel(level Level) {
	if l, ok := defaultLogger.(*logger); ok {
		l.mu.Lock()
		l.level = level
		l.mu.Unlock()
	}
}

// SetNoColor disables color output
func SetNoColor(noColor bool) {
	if l, ok := defaultLogger.(*logger); ok {
		l.mu.Lock()
		l.noColor = noColor
		l.mu.Unlock()
	}
	color.NoColor = noColor
}

// Package-level helpers targeting the default logger.
func Debug(args ...interface{})                      { defaultLogger.Debug(args...) }
func Debugf(format string, args ...interface{})      { defaultLogger.Debugf(format, args...) }
func Info(args ...interface{})                       { defaultLogger.Info(args...) }
func Infof(format string, args ...interface{})       { defaultLogger.Infof(format, args...) }
func Warn(args ...interface{})                       { defaultLogger.Warn(args...) }
func Warnf(format string, args ...interface{})       { defaultLogger.Warnf(format, args...) }
func Error(args ...interface{})                      { defaultLogger.Error(args...) }
func Errorf(format string, args ...interface{})      { defaultLogger.Errorf(format, args...) }
func Fatal(args ...interface{})                      { defaultLogger.Fatal(args...) }
func Fatalf(format string, args ...interface{})      { defaultLogger.Fatalf(format, args...) }
func WithField(key string, value interface{}) Logger { return defaultLogger.WithField(key, value) }
func WithPrefix(prefix string) Logger                { return defaultLogger.WithPrefix(prefix) }

// Success prints a highlighted success marker at info level.
func Success(args ...interface{}) {
	if l, ok := defaultLogger.(*logger); ok {
		l.log(InfoLevel, l.paint(successColor, "✓ "+fmt.Sprint(args...)))
	}
}

// Progress prints an in-progress marker at info level.
func Progress(args ...interface{}) {
	defaultLogger.Info("… " + fmt.Sprint(args...))
}

// LogSection prints a section divider for scenario phases.
func LogSection(title string) {
	if l, ok := defaultLogger.(*logger); ok {
		l.mu.Lock()
		line := strings.Repeat("=", len(title)+8)
		_, _ = fmt.Fprintln(l.writer, l.paint(sectionColor, line))
		_, _ = fmt.Fprintln(l.writer, l.paint(sectionColor, "=== "+title+" ==="))
		_, _ = fmt.Fprintln(l.writer, l.paint(sectionColor, line))
		l.mu.Unlock()
	}
}

func (l *logger) log(level Level, message string) {
	if level < l.level {
		return
	}

	l.mu.Lock()

	var parts []string

	if l.showTime {
		parts = append(parts, l.paint(timeColor, time.Now().Format("15:04:05")))
	}

	parts = append(parts, l.paint(levelColors[level], levelNames[level]))

	if l.prefix != "" {
		parts = append(parts, l.paint(prefixColor, "["+l.prefix+"]"))
	}

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		parts = append(parts, l.paint(fieldColor, strings.Join(pairs, " ")))
	}

	parts = append(parts, message)
	_, _ = fmt.Fprintln(l.writer, strings.Join(parts, " "))

	l.mu.Unlock()

	if level == FatalLevel {
		os.Exit(1)
	}
}

func (l *logger) paint(c *color.Color, s string) string {
	if l.noColor {
		return s
	}
	return c.Sprint(s)
}

func (l *logger) Debug(args ...interface{})                 { l.log(DebugLevel, fmt.Sprint(args...)) }
func (l *logger) Debugf(format string, args ...interface{}) { l.log(DebugLevel, fmt.Sprintf(format, args...)) }
func (l *logger) Info(args ...interface{})                  { l.log(InfoLevel, fmt.Sprint(args...)) }
func (l *logger) Infof(format string, args ...interface{})  { l.log(InfoLevel, fmt.Sprintf(format, args...)) }
func (l *logger) Warn(args ...interface{})                  { l.log(WarnLevel, fmt.Sprint(args...)) }
func (l *logger) Warnf(format string, args ...interface{})  { l.log(WarnLevel, fmt.Sprintf(format, args...)) }
func (l *logger) Error(args ...interface{})                 { l.log(ErrorLevel, fmt.Sprint(args...)) }
func (l *logger) Errorf(format string, args ...interface{}) { l.log(ErrorLevel, fmt.Sprintf(format, args...)) }
func (l *logger) Fatal(args ...interface{})                 { l.log(FatalLevel, fmt.Sprint(args...)) }
func (l *logger) Fatalf(format string, args ...interface{}) { l.log(FatalLevel, fmt.Sprintf(format, args...)) }

func (l *logger) WithField(key string, value interface{}) Logger {
	child := l.clone()
	child.fields[key] = value
	return child
}

func (l *logger) WithPrefix(prefix string) Logger {
	child := l.clone()
	child.prefix = prefix
	return child
}

func (l *logger) clone() *logger {
	child := &logger{
		level:    l.level,
		writer:   l.writer,
		fields:   make(map[string]interface{}, len(l.fields)+1),
		prefix:   l.prefix,
		noColor:  l.noColor,
		showTime: l.showTime,
	}
	for k, v := range l.fields {
		child.fields[k] = v
	}
	return child
}

// ParseLevel parses a string log level
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}
