// Package logging is a thin wrapper over logrus shared by the lison tools.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields
type Fields = logrus.Fields

// Entry aliases logrus.Entry
type Entry = logrus.Entry

// Logger is the interface for loggers used by the lison packages.
type Logger interface {
	Debug(...any)
	Debugf(string, ...any)

	Info(...any)
	Infof(string, ...any)

	Warn(...any)
	Warnf(string, ...any)

	Error(...any)
	Errorf(string, ...any)

	WithField(key string, value any) *Entry
	WithFields(Fields) *Entry

	SetLevel(string) error
	SetOutput(io.Writer)
	SetFormat(string) error
}

type logger struct {
	entry *logrus.Entry
}

// New creates a logger writing text records to stderr at info level.
func New() Logger {
	l := logrus.New()
	return logger{entry: logrus.NewEntry(l)}
}

var globalLogger = logger{entry: logrus.NewEntry(logrus.New())}

// Get returns the process wide logger.
func Get() Logger {
	return globalLogger
}

func (l logger) Debug(args ...any) {
	l.entry.Debug(args...)
}

func (l logger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l logger) Info(args ...any) {
	l.entry.Info(args...)
}

func (l logger) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l logger) Warn(args ...any) {
	l.entry.Warn(args...)
}

func (l logger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l logger) Error(args ...any) {
	l.entry.Error(args...)
}

func (l logger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

// WithField adds a field to the logger.
func (l logger) WithField(key string, value any) *Entry {
	return l.entry.WithField(key, value)
}

// WithFields adds a map of fields to the logger.
func (l logger) WithFields(fields Fields) *Entry {
	return l.entry.WithFields(fields)
}

// SetLevel sets the logger level from its name ("debug", "info", ...).
func (l logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	l.entry.Logger.SetLevel(lvl)
	return nil
}

func (l logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// SetFormat selects the record format, "text" or "json".
func (l logger) SetFormat(format string) error {
	switch format {
	case "", "text":
		l.entry.Logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	case "json":
		l.entry.Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	return nil
}
