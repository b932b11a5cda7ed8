package core

// LogLevel represents logging severity.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger is the structured logging port used throughout the domain.
// Implementations must accept nil field maps.
type Logger interface {
	// SetLevel sets the minimum level to output.
	SetLevel(level LogLevel)
	// GetLevel returns the current minimum level.
	GetLevel() LogLevel
	Debug(message string, fields map[string]any)
	Info(message string, fields map[string]any)
	Warn(message string, fields map[string]any)
	Error(message string, fields map[string]any)
	// Flush writes any buffered entries to their destination.
	Flush() error
}
