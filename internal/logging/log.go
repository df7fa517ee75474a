// Package logging provides the process-wide structured logger shared by the
// state machine core and its collaborators.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the global logger instance.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetLevel sets the logging level by name ("debug", "info", "warn", ...).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetOutput sets the log output destination.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat switches to JSON-formatted log lines.
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
}

// WithField returns a logger with a single field attached.
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithDevice returns a logger scoped to a device name.
func WithDevice(device string) *logrus.Entry {
	return Logger.WithField("device", device)
}

// WithState returns a logger scoped to a device and the state it is
// currently dispatching through.
func WithState(device, state string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{"device": device, "state": state})
}

// WithOperation returns a logger scoped to an operator-triggered operation.
func WithOperation(operation string) *logrus.Entry {
	return Logger.WithField("operation", operation)
}
