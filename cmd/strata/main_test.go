package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/strata/internal/adapters/telemetry"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/checker"
	"go.uber.org/mock/gomock"
)

type testApp struct {
	loader   *mocks.MockConfigLoader
	importer *mocks.MockGraphImporter
	reporter *mocks.MockReporter
	logger   *mocks.MockLogger
	provider ComponentProvider
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)
	ta := &testApp{
		loader:   mocks.NewMockConfigLoader(ctrl),
		importer: mocks.NewMockGraphImporter(ctrl),
		reporter: mocks.NewMockReporter(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	noop := telemetry.NewNoOp()
	application := app.New(
		ta.loader,
		ta.importer,
		mocks.NewMockFingerprinter(ctrl),
		mocks.NewMockGraphStore(ctrl),
		checker.New(noop),
		ta.reporter,
		mocks.NewMockGraphExporter(ctrl),
		mocks.NewMockWatcher(ctrl),
		ta.logger,
		noop,
	)
	ta.provider = func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: ta.logger, Telemetry: noop}, func() {}, nil
	}
	return ta
}

func TestRun_Version(t *testing.T) {
	ta := newTestApp(t)
	stdout := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), ta.provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "strata version")
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ConfigErrorIsLogged(t *testing.T) {
	ta := newTestApp(t)
	ta.loader.EXPECT().Load("").Return(nil, domain.ErrConfigNotFound)
	ta.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"check", "--no-cache"}, new(bytes.Buffer), new(bytes.Buffer), ta.provider)
	assert.Equal(t, 1, exitCode)
}

func TestRun_ViolationExitsWithoutLogging(t *testing.T) {
	ta := newTestApp(t)

	b := domain.NewGraphBuilder()
	_ = b.AddUnit(domain.NewUnit("tga.checkers.service.CheckerService", "tga.checkers.service"))
	_ = b.AddUnit(domain.NewUnit("tga.checkers.web.CheckerController", "tga.checkers.web"))
	_ = b.AddEdge("tga.checkers.service.CheckerService", "tga.checkers.web.CheckerController")

	cfg := &domain.Config{
		Path:   "/project/strata.yaml",
		Source: domain.Source{Kind: domain.SourceJVM, Root: "/project"},
		Rules: []domain.Rule{{
			Name:      "services are web independent",
			Subjects:  domain.MustParsePatternSet("tga.checkers.service.."),
			Forbidden: domain.MustParsePatternSet("..web.."),
		}},
	}
	ta.loader.EXPECT().Load("").Return(cfg, nil)
	ta.importer.EXPECT().Import(gomock.Any(), cfg.Source).Return(b.Build(), nil)
	ta.reporter.EXPECT().Render(gomock.Any(), gomock.Any(), domain.ReportText).Return(nil)

	exitCode := run(context.Background(), []string{"check", "--no-cache"}, new(bytes.Buffer), new(bytes.Buffer), ta.provider)
	assert.Equal(t, 1, exitCode)
}

func TestRun_PassingCheck(t *testing.T) {
	ta := newTestApp(t)

	cfg := &domain.Config{Path: "/project/strata.yaml", Source: domain.Source{Kind: domain.SourceJVM, Root: "/project"}}
	ta.loader.EXPECT().Load("").Return(cfg, nil)
	ta.importer.EXPECT().Import(gomock.Any(), cfg.Source).Return(domain.EmptyGraph(), nil)
	ta.reporter.EXPECT().Render(gomock.Any(), gomock.Any(), domain.ReportText).Return(nil)

	exitCode := run(context.Background(), []string{"check", "--no-cache"}, new(bytes.Buffer), new(bytes.Buffer), ta.provider)
	assert.Equal(t, 0, exitCode)
}
