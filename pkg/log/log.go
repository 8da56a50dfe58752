// Package log provides the structured logger used across the engine
// and its host front ends, backed by logrus the way the teacher wires
// it into its MMU and IO components.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the narrow logging surface engine components depend on.
// Satisfied by *logrus.Logger and *logrus.Entry.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) *logrus.Entry
}

// New returns a logrus.Logger configured the way the teacher's MMU
// configures its own: plain text, no color, no timestamp noise, field
// order preserved so register-trace lines stay readable.
func New(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// NewFileLogger returns a Logger identical to New but writing to path
// instead of stderr, for the CLI's --log-to-file flag. The caller is
// responsible for closing the returned file once logging is done.
func NewFileLogger(path string, level logrus.Level) (*logrus.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l := New(level)
	l.Out = f
	return l, f, nil
}

// NewNullLogger returns a Logger that discards everything, for tests
// that need to satisfy the Logger interface without producing output.
func NewNullLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}
