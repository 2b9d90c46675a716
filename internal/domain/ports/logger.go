package ports

// Logger is the leveled logger shared by services and adapters
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithField returns a logger that attaches key=value to every entry
	WithField(key string, value interface{}) Logger
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// WithField returns the receiver
func (n NopLogger) WithField(string, interface{}) Logger { return n }
