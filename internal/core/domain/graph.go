package domain

import (
	"cmp"
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Unit is a compilation unit: a Go package or declaration, or a JVM class.
type Unit struct {
	Name    InternedString
	Package PackagePath
	// External marks units referenced by the artifact set but not part of it.
	External bool
}

// NewUnit creates an internal unit.
func NewUnit(name, pkg string) Unit {
	return Unit{Name: NewInternedString(name), Package: NewPackagePath(pkg)}
}

// NewExternalUnit creates a unit that lives outside the imported artifact set.
func NewExternalUnit(name, pkg string) Unit {
	u := NewUnit(name, pkg)
	u.External = true
	return u
}

// Edge records that Source references Target.
type Edge struct {
	Source Unit
	Target Unit
}

// String renders the edge as "source -> target".
func (e Edge) String() string {
	return e.Source.Name.String() + " -> " + e.Target.Name.String()
}

func compareEdges(a, b Edge) int {
	if c := a.Source.Name.Compare(b.Source.Name); c != 0 {
		return c
	}
	return a.Target.Name.Compare(b.Target.Name)
}

type edgeKey struct {
	source InternedString
	target InternedString
}

// GraphBuilder accumulates units and edges. It is not safe for concurrent use.
type GraphBuilder struct {
	units map[InternedString]Unit
	edges map[edgeKey]struct{}
}

// NewGraphBuilder creates an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		units: make(map[InternedString]Unit),
		edges: make(map[edgeKey]struct{}),
	}
}

// AddUnit registers a unit. Re-adding an identical unit is a no-op.
// An internal definition wins over an earlier external reference to the same name.
func (b *GraphBuilder) AddUnit(u Unit) error {
	existing, ok := b.units[u.Name]
	if !ok {
		b.units[u.Name] = u
		return nil
	}
	if !existing.Package.Equal(u.Package) {
		return zerr.With(zerr.With(zerr.Wrap(ErrConflictingUnit, "unit registered with two packages"),
			"unit", u.Name.String()), "packages", []string{existing.Package.String(), u.Package.String()})
	}
	if existing.External && !u.External {
		b.units[u.Name] = u
	}
	return nil
}

// AddEdge records a dependency between two registered units. Self-edges and duplicates are dropped.
func (b *GraphBuilder) AddEdge(source, target string) error {
	s, t := NewInternedString(source), NewInternedString(target)
	if _, ok := b.units[s]; !ok {
		return zerr.With(zerr.Wrap(ErrUnknownUnit, "edge source is not a unit"), "unit", source)
	}
	if _, ok := b.units[t]; !ok {
		return zerr.With(zerr.Wrap(ErrUnknownUnit, "edge target is not a unit"), "unit", target)
	}
	if s == t {
		return nil
	}
	b.edges[edgeKey{source: s, target: t}] = struct{}{}
	return nil
}

// Build freezes the accumulated units and edges into a Graph.
func (b *GraphBuilder) Build() *Graph {
	units := make(map[InternedString]Unit, len(b.units))
	order := make([]Unit, 0, len(b.units))
	for name, u := range b.units {
		units[name] = u
		order = append(order, u)
	}
	slices.SortFunc(order, func(a, b Unit) int { return a.Name.Compare(b.Name) })

	edges := make([]Edge, 0, len(b.edges))
	for k := range b.edges {
		edges = append(edges, Edge{Source: units[k.source], Target: units[k.target]})
	}
	slices.SortFunc(edges, compareEdges)

	return &Graph{units: units, order: order, edges: edges}
}

// Graph is an immutable dependency graph. It is safe for concurrent readers.
type Graph struct {
	units map[InternedString]Unit
	order []Unit
	edges []Edge
}

// EmptyGraph returns a graph with no units and no edges.
func EmptyGraph() *Graph {
	return NewGraphBuilder().Build()
}

// Units iterates units sorted by name.
func (g *Graph) Units() iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for _, u := range g.order {
			if !yield(u) {
				return
			}
		}
	}
}

// Edges iterates edges sorted by source then target name.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, e := range g.edges {
			if !yield(e) {
				return
			}
		}
	}
}

// Unit looks up a unit by name.
func (g *Graph) Unit(name string) (Unit, bool) {
	u, ok := g.units[NewInternedString(name)]
	return u, ok
}

// Dependencies returns the targets of every edge leaving name, sorted by name.
func (g *Graph) Dependencies(name string) []Unit {
	source := NewInternedString(name)
	start, _ := slices.BinarySearchFunc(g.edges, source, func(e Edge, s InternedString) int {
		return e.Source.Name.Compare(s)
	})
	var out []Unit
	for _, e := range g.edges[start:] {
		if e.Source.Name != source {
			break
		}
		out = append(out, e.Target)
	}
	return out
}

// UnitCount returns the number of units.
func (g *Graph) UnitCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Packages returns the distinct package paths of internal units, sorted.
func (g *Graph) Packages() []string {
	seen := make(map[string]struct{})
	for _, u := range g.order {
		if u.External {
			continue
		}
		seen[u.Package.String()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.SortFunc(out, cmp.Compare[string])
	return out
}
