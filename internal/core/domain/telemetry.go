package domain

import "time"

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// VertexName returns the telemetry vertex name of a project step.
func VertexName(project string, step Step) string {
	return project + ": " + string(step)
}

// StepTiming summarises one recorded project step.
type StepTiming struct {
	// Name is the vertex name, see VertexName.
	Name     string
	Duration time.Duration
	// Cached is set when the step was satisfied by an earlier build.
	Cached bool
	Failed bool
	// Lines counts the lines the step's commands wrote.
	Lines int
}
