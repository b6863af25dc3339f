package port

// Fields carries structured key/value data for a log entry.
type Fields map[string]interface{}

// LoggerPort abstracts the core from the concrete logging backend.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error logs a failure together with its error value.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a logger that adds fields to every entry.
	WithFields(fields Fields) LoggerPort
}
