package config

// Stratafile represents the structure of the strata.yaml rule file.
type Stratafile struct {
	Version string     `yaml:"version"`
	Source  SourceDTO  `yaml:"source"`
	Rules   []RuleDTO  `yaml:"rules"`
	Layers  []LayerDTO `yaml:"layers"`
}

// SourceDTO describes the artifact set to import.
type SourceDTO struct {
	Kind         string   `yaml:"kind"`
	Root         string   `yaml:"root"`
	Packages     []string `yaml:"packages"`
	IncludeTests bool     `yaml:"includeTests"`
	Granularity  string   `yaml:"granularity"`
	File         string   `yaml:"file"`
}

// RuleDTO represents a layering rule.
type RuleDTO struct {
	Name      string   `yaml:"name"`
	Because   string   `yaml:"because"`
	Subjects  []string `yaml:"subjects"`
	Except    []string `yaml:"except"`
	Forbidden []string `yaml:"forbidden"`
}

// LayerDTO represents a named layer and the layers allowed to depend on it.
type LayerDTO struct {
	Name       string   `yaml:"name"`
	Packages   []string `yaml:"packages"`
	AccessedBy []string `yaml:"accessedBy"`
}
