// Package checker evaluates layering rules against a dependency graph.
package checker

import (
	"context"
	"runtime"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Matches reports whether the unit's package path matches any pattern in the set.
func Matches(unit domain.Unit, patterns domain.PatternSet) bool {
	return patterns.Matches(unit.Package)
}

// Evaluate returns the edges that break rule. Violations follow the graph's edge order.
func Evaluate(graph *domain.Graph, rule domain.Rule) domain.RuleResult {
	result := domain.RuleResult{Rule: rule}
	for edge := range graph.Edges() {
		if rule.AppliesTo(edge.Source) && rule.Forbids(edge.Target) {
			result.Violations = append(result.Violations, edge)
		}
	}
	return result
}

// Checker evaluates rule sets concurrently and records each evaluation as a telemetry vertex.
type Checker struct {
	telemetry ports.Telemetry
}

// New creates a Checker.
func New(telemetry ports.Telemetry) *Checker {
	return &Checker{telemetry: telemetry}
}

// Check evaluates every rule against graph with at most parallelism rules in flight.
// A parallelism below one uses the number of CPUs. Results keep the order of rules.
func (c *Checker) Check(
	ctx context.Context,
	graph *domain.Graph,
	rules []domain.Rule,
	parallelism int,
) (domain.Report, error) {
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}

	results := make([]domain.RuleResult, len(rules))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, rule := range rules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, vertex := c.telemetry.Record(ctx, domain.RuleVertexName(rule.Name))
			results[i] = Evaluate(graph, rule)
			for _, edge := range results[i].Violations {
				vertex.Log(domain.LogLevelWarn, edge.String())
			}
			vertex.Complete(nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Report{}, err
	}

	return domain.Report{
		Results: results,
		Units:   graph.UnitCount(),
		Edges:   graph.EdgeCount(),
	}, nil
}
