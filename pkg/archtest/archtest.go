// Package archtest runs strata rule files from Go tests.
//
//	func TestArchitecture(t *testing.T) {
//		archtest.Check(t, "strata.yaml")
//	}
package archtest

import (
	"context"
	"testing"

	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/golang"
	"go.trai.ch/strata/internal/adapters/importer"
	"go.trai.ch/strata/internal/adapters/jvm"
	"go.trai.ch/strata/internal/adapters/manifest"
	"go.trai.ch/strata/internal/adapters/telemetry"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/checker"
)

// testLogger forwards loader warnings to the test log.
type testLogger struct {
	tb testing.TB
}

func (l testLogger) Info(msg string) { l.tb.Log(msg) }
func (l testLogger) Warn(msg string) { l.tb.Log("warning: " + msg) }
func (l testLogger) Error(err error) { l.tb.Error(err) }

// Run loads the rule file at configPath, imports its source and evaluates every rule.
func Run(ctx context.Context, tb testing.TB, configPath string) (domain.Report, error) {
	tb.Helper()

	log := testLogger{tb: tb}
	cfg, err := config.NewLoader(log).Load(configPath)
	if err != nil {
		return domain.Report{}, err
	}

	dispatcher := importer.NewDispatcher(map[domain.SourceKind]ports.GraphImporter{
		domain.SourceGo:       golang.NewImporter(),
		domain.SourceJVM:      jvm.NewImporter(fs.NewWalker(), log),
		domain.SourceManifest: manifest.NewImporter(),
	})
	graph, err := dispatcher.Import(ctx, cfg.Source)
	if err != nil {
		return domain.Report{}, err
	}

	trace := telemetry.NewSink(func(vertex string, _ domain.LogLevel, msg string) {
		tb.Log(vertex + ": " + msg)
	})
	return checker.New(trace).Check(ctx, graph, cfg.Rules, 0)
}

// Check fails tb with one error per violated rule listing the offending edges.
func Check(tb testing.TB, configPath string) {
	tb.Helper()

	report, err := Run(context.Background(), tb, configPath)
	if err != nil {
		tb.Fatalf("strata: %v", err)
	}

	for _, res := range report.Failed() {
		msg := "rule \"" + res.Rule.Name + "\" was violated"
		if res.Rule.Because != "" {
			msg += " (" + res.Rule.Because + ")"
		}
		for _, v := range res.Violations {
			msg += "\n\t" + v.String()
		}
		tb.Error(msg)
	}
}
