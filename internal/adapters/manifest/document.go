// Package manifest reads and writes dependency graphs as YAML or JSON documents.
package manifest

import (
	"bytes"
	"encoding/json"
	"io"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a dependency graph.
type Document struct {
	Units []UnitDTO `yaml:"units" json:"units"`
	Edges []EdgeDTO `yaml:"edges" json:"edges"`
}

// UnitDTO is a serialized compilation unit.
type UnitDTO struct {
	Name     string `yaml:"name" json:"name"`
	Package  string `yaml:"package" json:"package"`
	External bool   `yaml:"external,omitempty" json:"external,omitempty"`
}

// EdgeDTO is a serialized dependency edge.
type EdgeDTO struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// FromGraph serializes g. Units and edges keep the graph's sorted order.
func FromGraph(g *domain.Graph) Document {
	doc := Document{
		Units: make([]UnitDTO, 0, g.UnitCount()),
		Edges: make([]EdgeDTO, 0, g.EdgeCount()),
	}
	for u := range g.Units() {
		doc.Units = append(doc.Units, UnitDTO{
			Name:     u.Name.String(),
			Package:  u.Package.String(),
			External: u.External,
		})
	}
	for e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDTO{From: e.Source.Name.String(), To: e.Target.Name.String()})
	}
	return doc
}

// Graph rebuilds the dependency graph described by the document.
func (d Document) Graph() (*domain.Graph, error) {
	b := domain.NewGraphBuilder()
	for _, u := range d.Units {
		if u.Name == "" {
			return nil, zerr.Wrap(domain.ErrInvalidConfig, "unit without a name")
		}
		unit := domain.NewUnit(u.Name, u.Package)
		unit.External = u.External
		if err := b.AddUnit(unit); err != nil {
			return nil, err
		}
	}
	for _, e := range d.Edges {
		if err := b.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Decode parses a YAML or JSON document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return Document{}, zerr.Wrap(err, "failed to decode graph document")
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, zerr.Wrap(err, "failed to decode graph document")
	}
	return doc, nil
}

// EncodeJSON writes the document as indented JSON.
func EncodeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, "failed to encode graph document")
	}
	return nil
}

// EncodeYAML writes the document as YAML.
func EncodeYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, "failed to encode graph document")
	}
	return enc.Close()
}
