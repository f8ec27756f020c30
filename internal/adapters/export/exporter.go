// Package export writes imported graphs as DOT, Mermaid or manifest documents.
package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.trai.ch/strata/internal/adapters/manifest"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphExporter = (*Exporter)(nil)

// Exporter implements ports.GraphExporter.
type Exporter struct{}

// New creates a new Exporter.
func New() *Exporter {
	return &Exporter{}
}

// Export writes graph to w in the requested format.
func (e *Exporter) Export(w io.Writer, graph *domain.Graph, format domain.GraphFormat) error {
	var err error
	switch format {
	case domain.GraphDOT, "":
		_, err = io.WriteString(w, DOT(graph))
	case domain.GraphMermaid:
		_, err = io.WriteString(w, Mermaid(graph))
	case domain.GraphJSON:
		err = manifest.EncodeJSON(w, manifest.FromGraph(graph))
	case domain.GraphYAML:
		err = manifest.EncodeYAML(w, manifest.FromGraph(graph))
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "unsupported graph format"), "format", string(format))
	}
	if err != nil {
		return zerr.Wrap(err, "failed to write graph")
	}
	return nil
}

type cluster struct {
	pkg   string
	units []domain.Unit
}

// clusters groups internal units by package, sorted by package path. External units come last.
func clusters(g *domain.Graph) ([]cluster, []domain.Unit) {
	byPkg := make(map[string][]domain.Unit)
	var external []domain.Unit
	for u := range g.Units() {
		if u.External {
			external = append(external, u)
			continue
		}
		byPkg[u.Package.String()] = append(byPkg[u.Package.String()], u)
	}

	out := make([]cluster, 0, len(byPkg))
	for pkg, units := range byPkg {
		out = append(out, cluster{pkg: pkg, units: units})
	}
	slices.SortFunc(out, func(a, b cluster) int { return strings.Compare(a.pkg, b.pkg) })
	return out, external
}

// DOT renders the graph as Graphviz DOT with one cluster per package.
func DOT(g *domain.Graph) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box fontname=\"Helvetica\"];\n")

	groups, external := clusters(g)
	for i, c := range groups {
		fmt.Fprintf(&b, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&b, "    label=%s;\n", dotQuote(c.pkg))
		b.WriteString("    style=dashed;\n")
		for _, u := range c.units {
			fmt.Fprintf(&b, "    %s;\n", dotQuote(u.Name.String()))
		}
		b.WriteString("  }\n")
	}

	if len(external) > 0 {
		b.WriteString("\n")
	}
	for _, u := range external {
		fmt.Fprintf(&b, "  %s [style=dashed color=\"#667085\"];\n", dotQuote(u.Name.String()))
	}

	if g.EdgeCount() > 0 {
		b.WriteString("\n")
	}
	for e := range g.Edges() {
		fmt.Fprintf(&b, "  %s -> %s;\n", dotQuote(e.Source.Name.String()), dotQuote(e.Target.Name.String()))
	}

	b.WriteString("}\n")
	return b.String()
}

func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}

// Mermaid renders the graph as a left-to-right Mermaid flowchart with one subgraph per package.
func Mermaid(g *domain.Graph) string {
	ids := make(map[string]string, g.UnitCount())
	i := 0
	for u := range g.Units() {
		ids[u.Name.String()] = fmt.Sprintf("u%d", i)
		i++
	}

	var b strings.Builder
	b.WriteString("graph LR\n")

	groups, external := clusters(g)
	for i, c := range groups {
		fmt.Fprintf(&b, "  subgraph p%d[%s]\n", i, mermaidLabel(c.pkg))
		for _, u := range c.units {
			fmt.Fprintf(&b, "    %s[%s]\n", ids[u.Name.String()], mermaidLabel(u.Name.String()))
		}
		b.WriteString("  end\n")
	}
	for _, u := range external {
		fmt.Fprintf(&b, "  %s([%s])\n", ids[u.Name.String()], mermaidLabel(u.Name.String()))
	}

	for e := range g.Edges() {
		fmt.Fprintf(&b, "  %s --> %s\n", ids[e.Source.Name.String()], ids[e.Target.Name.String()])
	}
	return b.String()
}

func mermaidLabel(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "#quot;") + `"`
}
