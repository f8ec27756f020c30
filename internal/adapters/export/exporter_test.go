package export_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/export"
	"go.trai.ch/strata/internal/adapters/manifest"
	"go.trai.ch/strata/internal/core/domain"
)

func sampleGraph(t *testing.T) *domain.Graph {
	t.Helper()
	b := domain.NewGraphBuilder()
	require.NoError(t, b.AddUnit(domain.NewUnit("a.web.C", "a.web")))
	require.NoError(t, b.AddUnit(domain.NewUnit("a.service.S", "a.service")))
	require.NoError(t, b.AddUnit(domain.NewExternalUnit("java.util.List", "java.util")))
	require.NoError(t, b.AddEdge("a.service.S", "java.util.List"))
	require.NoError(t, b.AddEdge("a.service.S", "a.web.C"))
	return b.Build()
}

func TestExporter_Export(t *testing.T) {
	tests := []struct {
		name       string
		format     domain.GraphFormat
		goldenName string
	}{
		{name: "dot", format: domain.GraphDOT, goldenName: "graph_dot"},
		{name: "mermaid", format: domain.GraphMermaid, goldenName: "graph_mermaid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, export.New().Export(&buf, sampleGraph(t), tt.format))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestExporter_Export_Manifest(t *testing.T) {
	for _, format := range []domain.GraphFormat{domain.GraphJSON, domain.GraphYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, export.New().Export(&buf, sampleGraph(t), format))

			doc, err := manifest.Decode(buf.Bytes())
			require.NoError(t, err)
			g, err := doc.Graph()
			require.NoError(t, err)
			assert.Equal(t, 3, g.UnitCount())
			assert.Equal(t, 2, g.EdgeCount())

			list, ok := g.Unit("java.util.List")
			require.True(t, ok)
			assert.True(t, list.External)
		})
	}
}

func TestExporter_Export_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.New().Export(&buf, domain.EmptyGraph(), domain.GraphMermaid))
	assert.Equal(t, "graph LR\n", buf.String())
}

func TestExporter_Export_UnknownFormat(t *testing.T) {
	err := export.New().Export(&bytes.Buffer{}, domain.EmptyGraph(), "svg")
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestDOT_Quotes(t *testing.T) {
	b := domain.NewGraphBuilder()
	require.NoError(t, b.AddUnit(domain.NewUnit(`a."b"`, "a")))

	assert.Contains(t, export.DOT(b.Build()), `"a.\"b\"";`)
}
