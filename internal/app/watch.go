package app

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/strata/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// watch checks once and then again whenever an artifact or the rule file changes, until ctx is done.
func (a *App) watch(ctx context.Context, s domain.Settings) error {
	cfg, err := a.checkOnce(ctx, s)
	if cfg == nil {
		return err
	}
	a.logResult(err)

	root := cfg.Source.Root
	if cfg.Source.Kind == domain.SourceManifest {
		root = filepath.Dir(cfg.Source.File)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.watcher.Start(ctx, root); err != nil {
		return errors.Join(domain.ErrWatcherFailed, zerr.With(err, "root", root))
	}
	defer func() { _ = a.watcher.Stop() }()

	if dir := filepath.Dir(cfg.Path); !within(root, dir) {
		if err := a.watcher.Add(dir); err != nil {
			return errors.Join(domain.ErrWatcherFailed, zerr.With(err, "path", dir))
		}
	}

	exts := cfg.Source.Kind.Extensions()
	relevant := func(path string) bool {
		return path == cfg.Path || slices.Contains(exts, filepath.Ext(path))
	}

	rerun := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func([]string) {
		select {
		case rerun <- struct{}{}:
		default:
		}
	})
	go func() {
		for event := range a.watcher.Events() {
			if relevant(event.Path) {
				debouncer.Add(event.Path)
			}
		}
	}()

	a.logger.Info("watching " + root + " for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rerun:
			a.logger.Info("change detected, checking again")
			_, err := a.checkOnce(ctx, s)
			a.logResult(err)
		}
	}
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// logResult reports a failed watch iteration. Violations are already in the report.
func (a *App) logResult(err error) {
	if err == nil || errors.Is(err, domain.ErrRuleViolation) || errors.Is(err, context.Canceled) {
		return
	}
	a.logger.Error(err)
}
