// Package config provides the rule file loader for strata.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// SupportedVersion is the only rule file schema version.
const SupportedVersion = "1"

const defaultGoPackages = "./..."

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the rule file at path, or searches the working directory and its parents when path is empty.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		if path, err = findConfiguration(cwd); err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve configuration path"), "path", path)
	}

	var file Stratafile
	if err := readAndUnmarshalYAML(abs, &file); err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	cfg, err := l.build(abs, &file)
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	dir := cwd
	for {
		for _, name := range []string{domain.ConfigFileName, domain.AltConfigFileName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no "+domain.ConfigFileName+" in this directory or its parents"), "cwd", cwd)
}

func (l *Loader) build(configPath string, file *Stratafile) (*domain.Config, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "rule file version is not supported"), "version", file.Version)
	}

	src, err := l.buildSource(configPath, file.Source)
	if err != nil {
		return nil, err
	}

	rules, err := buildRules(file.Rules)
	if err != nil {
		return nil, err
	}

	layerRules, err := buildLayers(file.Layers)
	if err != nil {
		return nil, err
	}
	rules = append(rules, layerRules...)

	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if seen[r.Name] {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateRule, "rule names must be unique"), "rule", r.Name)
		}
		seen[r.Name] = true
	}

	if len(rules) == 0 {
		l.Logger.Warn(fmt.Sprintf("%s defines no rules, every check will pass", filepath.Base(configPath)))
	}

	return &domain.Config{Path: configPath, Source: src, Rules: rules}, nil
}

func (l *Loader) buildSource(configPath string, dto SourceDTO) (domain.Source, error) {
	src := domain.Source{
		Kind:         domain.SourceKind(dto.Kind),
		Root:         resolvePath(configPath, dto.Root),
		Packages:     dto.Packages,
		IncludeTests: dto.IncludeTests,
		Granularity:  domain.Granularity(dto.Granularity),
	}
	if src.Kind == "" {
		src.Kind = domain.SourceGo
	}
	if src.Granularity == "" {
		src.Granularity = domain.GranularityPackage
	}

	switch src.Kind {
	case domain.SourceGo:
		if len(src.Packages) == 0 {
			src.Packages = []string{defaultGoPackages}
		}
	case domain.SourceJVM:
	case domain.SourceManifest:
		if dto.File == "" {
			return domain.Source{}, zerr.Wrap(domain.ErrInvalidConfig, "manifest source requires a file")
		}
		src.File = resolvePath(configPath, dto.File)
	default:
		return domain.Source{}, zerr.With(zerr.Wrap(domain.ErrUnknownSourceKind, "source kind must be go, jvm or manifest"), "kind", dto.Kind)
	}

	switch src.Granularity {
	case domain.GranularityPackage, domain.GranularityDeclaration:
	default:
		return domain.Source{}, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "granularity must be package or declaration"), "granularity", dto.Granularity)
	}
	if src.Kind != domain.SourceGo && dto.Granularity != "" {
		l.Logger.Warn(fmt.Sprintf("granularity has no effect for %s sources", src.Kind))
	}

	return src, nil
}

func buildRules(dtos []RuleDTO) ([]domain.Rule, error) {
	rules := make([]domain.Rule, 0, len(dtos))
	for i, dto := range dtos {
		if dto.Name == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "rule without a name"), "index", i)
		}
		if len(dto.Subjects) == 0 || len(dto.Forbidden) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "rule needs subjects and forbidden patterns"), "rule", dto.Name)
		}

		subjects, err := domain.ParsePatternSet(dto.Subjects)
		if err != nil {
			return nil, zerr.With(err, "rule", dto.Name)
		}
		except, err := domain.ParsePatternSet(dto.Except)
		if err != nil {
			return nil, zerr.With(err, "rule", dto.Name)
		}
		forbidden, err := domain.ParsePatternSet(dto.Forbidden)
		if err != nil {
			return nil, zerr.With(err, "rule", dto.Name)
		}

		rules = append(rules, domain.Rule{
			Name:      dto.Name,
			Because:   dto.Because,
			Subjects:  subjects,
			Except:    except,
			Forbidden: forbidden,
		})
	}
	return rules, nil
}

func buildLayers(dtos []LayerDTO) ([]domain.Rule, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	layers := make([]domain.Layer, 0, len(dtos))
	for i, dto := range dtos {
		if dto.Name == "" || len(dto.Packages) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "layer needs a name and packages"), "index", i)
		}
		packages, err := domain.ParsePatternSet(dto.Packages)
		if err != nil {
			return nil, zerr.With(err, "layer", dto.Name)
		}
		layers = append(layers, domain.Layer{Name: dto.Name, Packages: packages, AccessedBy: dto.AccessedBy})
	}
	return domain.LayerRules(layers)
}

func resolvePath(configPath, p string) string {
	configDir := filepath.Dir(configPath)
	if p == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(configDir, p))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is the user's rule file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zerr.Wrap(domain.ErrConfigNotFound, err.Error())
		}
		return errors.Join(domain.ErrConfigReadFailed, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return errors.Join(domain.ErrConfigParseFailed, err)
	}
	return nil
}
