package domain

// SourceKind names the importer that turns artifacts into a graph.
type SourceKind string

const (
	// SourceGo imports Go packages through the go toolchain.
	SourceGo SourceKind = "go"
	// SourceJVM parses Java and Kotlin sources.
	SourceJVM SourceKind = "jvm"
	// SourceManifest reads a graph that was written down as YAML or JSON.
	SourceManifest SourceKind = "manifest"
)

// Extensions returns the file extensions that make up artifacts of this kind.
func (k SourceKind) Extensions() []string {
	switch k {
	case SourceGo:
		return []string{".go", ".mod", ".sum"}
	case SourceJVM:
		return []string{".java", ".kt"}
	case SourceManifest:
		return []string{".yaml", ".yml", ".json"}
	default:
		return nil
	}
}

// Granularity selects what a Go unit is.
type Granularity string

const (
	// GranularityPackage makes each package one unit.
	GranularityPackage Granularity = "package"
	// GranularityDeclaration makes each package-level declaration one unit.
	GranularityDeclaration Granularity = "declaration"
)

// Source describes the artifact set to import.
type Source struct {
	Kind SourceKind
	// Root is the absolute directory the artifacts live under.
	Root string
	// Packages restricts the import. Go: package patterns, JVM: package prefixes.
	Packages []string
	// IncludeTests imports test artifacts too. They are excluded by default.
	IncludeTests bool
	Granularity  Granularity
	// File is the manifest document for SourceManifest.
	File string
}

// Config is a loaded rule file.
type Config struct {
	// Path is the absolute path of the rule file.
	Path   string
	Source Source
	Rules  []Rule
}
