// Package app implements the application layer for strata.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/strata/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/checker"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	importer      ports.GraphImporter
	fingerprinter ports.Fingerprinter
	store         ports.GraphStore
	checker       *checker.Checker
	reporter      ports.Reporter
	exporter      ports.GraphExporter
	watcher       ports.Watcher
	logger        ports.Logger
	telemetry     ports.Telemetry
	stdout        io.Writer
	debounce      time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	importer ports.GraphImporter,
	fingerprinter ports.Fingerprinter,
	store ports.GraphStore,
	chk *checker.Checker,
	reporter ports.Reporter,
	exporter ports.GraphExporter,
	w ports.Watcher,
	log ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader:  loader,
		importer:      importer,
		fingerprinter: fingerprinter,
		store:         store,
		checker:       chk,
		reporter:      reporter,
		exporter:      exporter,
		watcher:       w,
		logger:        log,
		telemetry:     telemetry,
		stdout:        os.Stdout,
		debounce:      watcher.DefaultDebounceWindow,
	}
}

// WithOutput redirects reports and exported graphs to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithWatchDebounce sets the quiet period before a burst of changes triggers a check in watch mode.
func (a *App) WithWatchDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// Check loads the rule file, imports the graph and evaluates every rule.
// A report with violations is returned as an error matching domain.ErrRuleViolation.
func (a *App) Check(ctx context.Context, s domain.Settings) error {
	a.configureLogger(s)

	if s.Watch {
		return a.watch(ctx, s)
	}
	_, err := a.checkOnce(ctx, s)
	return err
}

// Graph imports the graph described by the rule file and exports it.
func (a *App) Graph(ctx context.Context, s domain.Settings) error {
	a.configureLogger(s)

	cfg, err := a.loadConfig(ctx, s)
	if err != nil {
		return err
	}

	graph, err := a.loadGraph(ctx, cfg, s)
	if err != nil {
		return err
	}

	format := domain.GraphFormat(s.Format)
	if s.Format == string(domain.ReportText) {
		format = domain.GraphDOT
	}
	return a.exporter.Export(a.stdout, graph, format)
}

func (a *App) configureLogger(s domain.Settings) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(s.LogJSON)
	}
}

func (a *App) checkOnce(ctx context.Context, s domain.Settings) (*domain.Config, error) {
	cfg, err := a.loadConfig(ctx, s)
	if err != nil {
		return nil, err
	}

	graph, err := a.loadGraph(ctx, cfg, s)
	if err != nil {
		return cfg, err
	}

	report, err := a.checker.Check(ctx, graph, cfg.Rules, s.Parallelism)
	if err != nil {
		return cfg, zerr.Wrap(err, "rule evaluation failed")
	}

	if err := a.reporter.Render(a.stdout, report, domain.ReportFormat(s.Format)); err != nil {
		return cfg, err
	}
	return cfg, report.Err()
}

func (a *App) loadConfig(ctx context.Context, s domain.Settings) (*domain.Config, error) {
	_, v := a.telemetry.Record(ctx, domain.VertexLoadConfig)
	cfg, err := a.configLoader.Load(s.ConfigPath)
	v.Complete(err)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// loadGraph returns the cached graph for the current artifacts or imports a fresh one.
// Cache failures are logged and never fail the run.
func (a *App) loadGraph(ctx context.Context, cfg *domain.Config, s domain.Settings) (*domain.Graph, error) {
	cacheDir := s.CacheDir
	if cacheDir != "" && !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(filepath.Dir(cfg.Path), cacheDir)
	}
	useCache := !s.NoCache && cacheDir != ""

	var key string
	if useCache {
		var err error
		if key, err = a.fingerprinter.Fingerprint(cfg.Source); err != nil {
			a.logger.Warn("skipping graph cache: " + err.Error())
			useCache = false
		}
	}

	if useCache {
		graph, err := a.store.Get(cacheDir, key)
		switch {
		case err != nil:
			a.logger.Warn("ignoring unreadable graph cache: " + err.Error())
		case graph != nil:
			_, v := a.telemetry.Record(ctx, domain.VertexCacheHit)
			v.Cached()
			v.Complete(nil)
			return graph, nil
		}
	}

	vctx, v := a.telemetry.Record(ctx, domain.VertexImport)
	graph, err := a.importer.Import(vctx, cfg.Source)
	v.Complete(err)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to import dependency graph")
	}

	if useCache {
		if err := a.store.Put(cacheDir, key, graph); err != nil {
			a.logger.Warn("failed to cache graph: " + err.Error())
		}
	}
	return graph, nil
}
