package domain

// LogLevel is the severity of a message attached to a telemetry vertex, mirroring slog levels.
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

// String returns the upper-case level name.
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

// Vertex names used for the phases of a run.
const (
	VertexLoadConfig = "load config"
	VertexImport     = "import graph"
	VertexCacheHit   = "graph cache"
)

// RuleVertexName names the telemetry vertex of a single rule evaluation.
func RuleVertexName(rule string) string {
	return "rule " + rule
}
