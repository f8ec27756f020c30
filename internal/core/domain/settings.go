package domain

import "path/filepath"

const (
	// StrataDirName is the name of the tool's working directory.
	StrataDirName = ".strata"

	// CacheDirName is the name of the graph cache directory.
	CacheDirName = "cache"

	// ConfigFileName is the preferred rule file name.
	ConfigFileName = "strata.yaml"

	// AltConfigFileName is the alternate rule file name.
	AltConfigFileName = "strata.yml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default graph cache location relative to the working directory.
func DefaultCachePath() string {
	return filepath.Join(StrataDirName, CacheDirName)
}

// ReportFormat selects how check results are printed.
type ReportFormat string

const (
	// ReportText is the human readable report.
	ReportText ReportFormat = "text"
	// ReportJSON is the machine readable report.
	ReportJSON ReportFormat = "json"
)

// GraphFormat selects how an imported graph is exported.
type GraphFormat string

const (
	// GraphDOT is Graphviz DOT.
	GraphDOT GraphFormat = "dot"
	// GraphMermaid is a Mermaid flowchart.
	GraphMermaid GraphFormat = "mermaid"
	// GraphJSON is the manifest document format, readable by the manifest importer.
	GraphJSON GraphFormat = "json"
	// GraphYAML is the manifest document format as YAML.
	GraphYAML GraphFormat = "yaml"
)

// Settings are the tool options assembled from defaults, environment and flags.
type Settings struct {
	ConfigPath  string `koanf:"config"`
	Format      string `koanf:"format"`
	CacheDir    string `koanf:"cache_dir"`
	NoCache     bool   `koanf:"no_cache"`
	Parallelism int    `koanf:"parallelism"`
	LogJSON     bool   `koanf:"log_json"`
	Watch       bool   `koanf:"watch"`
}
