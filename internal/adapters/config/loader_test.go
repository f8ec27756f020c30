package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const checkersConfig = `version: "1"
source:
  kind: jvm
  root: src/main/java
  packages: [tga.checkers]
rules:
  - name: services and repositories are web independent
    because: Services and repositories should not depend on web layer
    subjects: ["tga.checkers.service..", "tga.checkers.repository.."]
    forbidden: ["..tga.checkers.web.."]
layers:
  - name: web
    packages: ["..web.."]
  - name: service
    packages: ["..service.."]
    accessedBy: [web]
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, domain.ConfigFileName, checkersConfig)
	loader, _ := newLoader(t)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, domain.SourceJVM, cfg.Source.Kind)
	assert.Equal(t, filepath.Join(dir, "src", "main", "java"), cfg.Source.Root)
	assert.Equal(t, []string{"tga.checkers"}, cfg.Source.Packages)
	assert.Equal(t, domain.GranularityPackage, cfg.Source.Granularity)

	require.Len(t, cfg.Rules, 3)
	rule := cfg.Rules[0]
	assert.Equal(t, "services and repositories are web independent", rule.Name)
	assert.Equal(t, "Services and repositories should not depend on web layer", rule.Because)
	assert.Equal(t, []string{"tga.checkers.service..", "tga.checkers.repository.."}, rule.Subjects.Strings())
	assert.True(t, rule.Forbids(domain.NewUnit("tga.checkers.web.CheckerController", "tga.checkers.web")))
	assert.Equal(t, "layer web", cfg.Rules[1].Name)
	assert.Equal(t, "layer service", cfg.Rules[2].Name)
}

func TestLoader_Load_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, domain.ConfigFileName, `rules:
  - name: domain is pure
    subjects: ["example.com/app/internal/core/domain"]
    forbidden: ["example.com/app/internal/adapters/..."]
`)
	loader, _ := newLoader(t)

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceGo, cfg.Source.Kind)
	assert.Equal(t, dir, cfg.Source.Root)
	assert.Equal(t, []string{"./..."}, cfg.Source.Packages)
	assert.Equal(t, domain.GranularityPackage, cfg.Source.Granularity)
}

func TestLoader_Load_Discovery(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, domain.AltConfigFileName, checkersConfig)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))
	t.Chdir(nested)

	loader, _ := newLoader(t)
	cfg, err := loader.Load("")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(cfg.Path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_Load_NotFound(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(filepath.Join(t.TempDir(), domain.ConfigFileName))
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Load_NoRulesWarns(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, domain.ConfigFileName, "source:\n  kind: go\n")
	loader, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
}

func TestLoader_Load_Manifest(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, domain.ConfigFileName, `source:
  kind: manifest
  file: graph.yaml
rules:
  - name: r
    subjects: [".."]
    forbidden: ["..web.."]
`)
	loader, _ := newLoader(t)

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "graph.yaml"), cfg.Source.File)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "malformed yaml",
			content: "rules: [",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "unsupported version",
			content: "version: \"2\"\n",
			want:    domain.ErrUnsupportedVersion,
		},
		{
			name:    "unknown kind",
			content: "source:\n  kind: cobol\n",
			want:    domain.ErrUnknownSourceKind,
		},
		{
			name:    "manifest without file",
			content: "source:\n  kind: manifest\n",
			want:    domain.ErrInvalidConfig,
		},
		{
			name:    "bad granularity",
			content: "source:\n  granularity: module\n",
			want:    domain.ErrInvalidConfig,
		},
		{
			name:    "rule without forbidden",
			content: "rules:\n  - name: r\n    subjects: [\"..\"]\n",
			want:    domain.ErrInvalidConfig,
		},
		{
			name:    "invalid pattern",
			content: "rules:\n  - name: r\n    subjects: [\"a...b\"]\n    forbidden: [\"..\"]\n",
			want:    domain.ErrInvalidPattern,
		},
		{
			name: "duplicate rule",
			content: "rules:\n  - name: r\n    subjects: [\"..\"]\n    forbidden: [\"..web..\"]\n" +
				"  - name: r\n    subjects: [\"..\"]\n    forbidden: [\"..web..\"]\n",
			want: domain.ErrDuplicateRule,
		},
		{
			name:    "unknown layer",
			content: "layers:\n  - name: web\n    packages: [\"..web..\"]\n    accessedBy: [ghost]\n",
			want:    domain.ErrUnknownLayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), domain.ConfigFileName, tt.content)
			loader, _ := newLoader(t)

			_, err := loader.Load(path)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
