package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPattern is returned when a package pattern cannot be parsed.
	ErrInvalidPattern = zerr.New("invalid package pattern")

	// ErrConflictingUnit is returned when a unit name is registered twice with different packages.
	ErrConflictingUnit = zerr.New("conflicting compilation unit")

	// ErrUnknownUnit is returned when an edge references a unit that is not in the graph.
	ErrUnknownUnit = zerr.New("unknown compilation unit")

	// ErrRuleViolation is returned when at least one rule has violating edges.
	ErrRuleViolation = zerr.New("rule violation")

	// ErrImportFailed is returned when the artifact set cannot be imported into a graph.
	ErrImportFailed = zerr.New("import failed")
)

var (
	// ErrConfigNotFound is returned when no rule file can be located.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the rule file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the rule file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrUnsupportedVersion is returned when the rule file declares an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported configuration version")

	// ErrInvalidConfig is returned when the rule file is well formed but semantically wrong.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrDuplicateRule is returned when two rules share a name.
	ErrDuplicateRule = zerr.New("duplicate rule name")

	// ErrUnknownLayer is returned when a layer references a layer that is not declared.
	ErrUnknownLayer = zerr.New("unknown layer")

	// ErrUnknownSourceKind is returned when no importer handles the configured source kind.
	ErrUnknownSourceKind = zerr.New("unknown source kind")

	// ErrUnknownFormat is returned when an output format is not supported.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrSettingsLoadFailed is returned when tool settings cannot be assembled.
	ErrSettingsLoadFailed = zerr.New("failed to load settings")
)

var (
	// ErrFingerprintFailed is returned when the artifact set cannot be fingerprinted.
	ErrFingerprintFailed = zerr.New("failed to fingerprint artifacts")

	// ErrStoreReadFailed is returned when a cached graph cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cached graph")

	// ErrStoreUnmarshalFailed is returned when a cached graph cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to decode cached graph")

	// ErrStoreWriteFailed is returned when a graph cannot be written to the cache.
	ErrStoreWriteFailed = zerr.New("failed to write cached graph")

	// ErrStoreCreateFailed is returned when the cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache directory")

	// ErrWatcherFailed is returned when the file system watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")
)
