package app

import (
	"bytes"
	"io"

	log "github.com/sirupsen/logrus"
)

// Logger is the logging interface used across the application layer, so
// different implementations can be plugged in easily
type Logger interface {
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	WithField(key string, value interface{}) *log.Entry
	WithFields(fields log.Fields) *log.Entry
	SetLevel(level log.Level)
	GetLevel() log.Level
	SetOutput(writer io.Writer)
}

// NewLogger returns a logrus logger writing text to stderr
func NewLogger() Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return logger
}

// NewNullLogger returns a logger that discards all logs, used mainly for testing
func NewNullLogger() Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// NewBufferLogger returns a logger that stores all logs in a buffer, used mainly for testing
func NewBufferLogger(b *bytes.Buffer) Logger {
	logger := log.New()
	logger.SetOutput(b)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return logger
}

// IsDebugLevel reports whether l logs debug messages
func IsDebugLevel(l Logger) bool {
	return l.GetLevel() >= log.DebugLevel
}
