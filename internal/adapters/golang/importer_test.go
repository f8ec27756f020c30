package golang_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/golang"
	"go.trai.ch/strata/internal/core/domain"
)

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("GOWORK", "off")
	t.Setenv("GOFLAGS", "-mod=mod")

	root := t.TempDir()
	files["go.mod"] = "module example.com/app\n\ngo 1.22\n"
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
	return root
}

func sampleModule(t *testing.T) string {
	return writeModule(t, map[string]string{
		"core/widget.go": `package core

type Widget struct{ Name string }

func NewWidget() *Widget { return &Widget{Name: "w"} }
`,
		"web/handler.go": `package web

import (
	"fmt"

	"example.com/app/core"
)

type Handler struct{ w *core.Widget }

func (h *Handler) Serve() { fmt.Println(core.NewWidget().Name) }
`,
		"web/handler_test.go": `package web

import "testing"

func TestServe(t *testing.T) { (&Handler{}).Serve() }
`,
	})
}

func edgeStrings(g *domain.Graph) []string {
	var out []string
	for e := range g.Edges() {
		out = append(out, e.String())
	}
	return out
}

func TestImporter_Packages(t *testing.T) {
	root := sampleModule(t)

	g, err := golang.NewImporter().Import(context.Background(), domain.Source{
		Kind:        domain.SourceGo,
		Root:        root,
		Packages:    []string{"./..."},
		Granularity: domain.GranularityPackage,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"example.com/app/core", "example.com/app/web"}, g.Packages())
	assert.Equal(t, []string{
		"example.com/app/web -> example.com/app/core",
		"example.com/app/web -> fmt",
	}, edgeStrings(g))

	fmtUnit, ok := g.Unit("fmt")
	require.True(t, ok)
	assert.True(t, fmtUnit.External)
}

func TestImporter_IncludeTests(t *testing.T) {
	root := sampleModule(t)

	g, err := golang.NewImporter().Import(context.Background(), domain.Source{
		Kind:         domain.SourceGo,
		Root:         root,
		IncludeTests: true,
		Granularity:  domain.GranularityPackage,
	})
	require.NoError(t, err)

	assert.Contains(t, edgeStrings(g), "example.com/app/web -> testing")
	for u := range g.Units() {
		assert.NotContains(t, u.Name.String(), ".test")
	}
}

func TestImporter_ExternalTestsFoldIntoPackage(t *testing.T) {
	root := writeModule(t, map[string]string{
		"core/widget.go": `package core

type Widget struct{ Name string }
`,
		"web/handler.go": `package web

type Handler struct{}
`,
		"web/handler_ext_test.go": `package web_test

import (
	"testing"

	"example.com/app/core"
	"example.com/app/web"
)

func TestHandler(t *testing.T) {
	_ = web.Handler{}
	_ = core.Widget{}
}
`,
	})

	g, err := golang.NewImporter().Import(context.Background(), domain.Source{
		Kind:         domain.SourceGo,
		Root:         root,
		Packages:     []string{"./..."},
		IncludeTests: true,
		Granularity:  domain.GranularityPackage,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"example.com/app/core", "example.com/app/web"}, g.Packages())
	edges := edgeStrings(g)
	assert.Contains(t, edges, "example.com/app/web -> example.com/app/core")
	assert.Contains(t, edges, "example.com/app/web -> testing")
	for u := range g.Units() {
		assert.NotContains(t, u.Name.String(), "_test")
	}
}

func TestImporter_Declarations(t *testing.T) {
	root := sampleModule(t)

	g, err := golang.NewImporter().Import(context.Background(), domain.Source{
		Kind:        domain.SourceGo,
		Root:        root,
		Packages:    []string{"./..."},
		Granularity: domain.GranularityDeclaration,
	})
	require.NoError(t, err)

	edges := edgeStrings(g)
	for _, want := range []string{
		"example.com/app/core.NewWidget -> example.com/app/core.Widget",
		"example.com/app/web.Handler -> example.com/app/core.NewWidget",
		"example.com/app/web.Handler -> example.com/app/core.Widget",
		"example.com/app/web.Handler -> fmt",
	} {
		assert.True(t, slices.Contains(edges, want), "missing edge %s in %v", want, edges)
	}

	handler, ok := g.Unit("example.com/app/web.Handler")
	require.True(t, ok)
	assert.Equal(t, "example.com/app/web", handler.Package.String())
}

func TestImporter_BrokenPackage(t *testing.T) {
	root := writeModule(t, map[string]string{
		"broken/a.go": "package a\n",
		"broken/b.go": "package b\n",
	})

	_, err := golang.NewImporter().Import(context.Background(), domain.Source{
		Kind: domain.SourceGo,
		Root: root,
	})
	require.ErrorIs(t, err, domain.ErrImportFailed)
}
