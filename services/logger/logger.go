package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the minimum severity that gets written
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// Logger is the printf-style logger every service receives through its options
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger writes through logrus
type DefaultLogger struct {
	entry *logrus.Entry
}

// NewDefaultLogger logs text to stderr at the given level
func NewDefaultLogger(level Level) *DefaultLogger {
	return New(os.Stderr, level, false)
}

// New builds a logger writing to w, JSON formatted when asJSON is set
func New(w io.Writer, level Level, asJSON bool) *DefaultLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(toLogrus(level))
	if asJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &DefaultLogger{entry: logrus.NewEntry(l)}
}

// Discard drops everything, used by tests
func Discard() *DefaultLogger {
	return New(io.Discard, ErrorLevel, false)
}

// ParseLevel maps LOG_LEVEL values, unknown values fall back to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "error":
		return ErrorLevel
	}
	return InfoLevel
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	}
	return logrus.InfoLevel
}

// With returns a logger that adds key to every entry
func (l *DefaultLogger) With(key string, value interface{}) *DefaultLogger {
	return &DefaultLogger{entry: l.entry.WithField(key, value)}
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}
