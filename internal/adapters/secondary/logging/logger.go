package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// Logger is a leveled logger backed by its own logrus instance
type Logger struct {
	entry  *logrus.Entry
	closer io.Closer
}

// New creates a logger from configuration. Output goes to stderr unless
// a log file is configured.
func New(cfg entities.LoggingConfig) (*Logger, error) {
	if cfg.File == "" {
		return NewWithWriter(cfg, os.Stderr), nil
	}

	// #nosec G304 - log file path comes from validated configuration
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}

	logger := NewWithWriter(cfg, file)
	logger.closer = file
	return logger, nil
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(cfg entities.LoggingConfig, w io.Writer) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(toLogrusLevel(cfg))

	if cfg.JSONFormat {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
			DisableColors:   w != os.Stderr,
		})
	}

	return &Logger{entry: logrus.NewEntry(base)}
}

// Component returns a logger tagged with the component name
func (l *Logger) Component(name string) ports.Logger {
	return l.WithField("component", name)
}

// Debug logs debug messages
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.entry.Debugf(msg, args...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, args ...interface{}) {
	l.entry.Infof(msg, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.entry.Warnf(msg, args...)
}

// Error logs error messages
func (l *Logger) Error(msg string, args ...interface{}) {
	l.entry.Errorf(msg, args...)
}

// WithField returns a child logger sharing the same output
func (l *Logger) WithField(key string, value interface{}) ports.Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// toLogrusLevel maps the configured level; verbose forces debug
func toLogrusLevel(cfg entities.LoggingConfig) logrus.Level {
	if cfg.Verbose {
		return logrus.DebugLevel
	}

	switch cfg.GetLevel() {
	case entities.LogLevelDebug:
		return logrus.DebugLevel
	case entities.LogLevelWarn:
		return logrus.WarnLevel
	case entities.LogLevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Ensure Logger implements ports.Logger
var _ ports.Logger = (*Logger)(nil)
