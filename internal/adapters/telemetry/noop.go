// Package telemetry provides telemetry adapters that do not need a recording backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

var (
	_ ports.Telemetry = (*Sink)(nil)
	_ ports.Vertex    = (*sinkVertex)(nil)
)

// LogFunc receives a message attached to the vertex with the given name.
type LogFunc func(vertex string, level domain.LogLevel, msg string)

// Sink is a ports.Telemetry without a recording backend.
// Vertex messages go to an optional LogFunc; output, completion and cache state are dropped.
type Sink struct {
	logf LogFunc
}

// NewNoOp creates a Sink that discards everything.
func NewNoOp() *Sink {
	return &Sink{}
}

// NewSink creates a Sink passing vertex messages to logf.
func NewSink(logf LogFunc) *Sink {
	return &Sink{logf: logf}
}

// Record starts a vertex named name.
func (s *Sink) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &sinkVertex{name: name, logf: s.logf}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (s *Sink) Close() error {
	return nil
}

type sinkVertex struct {
	name string
	logf LogFunc
}

func (v *sinkVertex) Stdout() io.Writer {
	return io.Discard
}

func (v *sinkVertex) Log(level domain.LogLevel, msg string) {
	if v.logf != nil {
		v.logf(v.name, level, msg)
	}
}

func (v *sinkVertex) Complete(error) {}

func (v *sinkVertex) Cached() {}
