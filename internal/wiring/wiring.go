// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/strata/internal/adapters/cas"
	_ "go.trai.ch/strata/internal/adapters/config"
	_ "go.trai.ch/strata/internal/adapters/export"
	_ "go.trai.ch/strata/internal/adapters/fs"
	_ "go.trai.ch/strata/internal/adapters/golang"
	_ "go.trai.ch/strata/internal/adapters/importer"
	_ "go.trai.ch/strata/internal/adapters/jvm"
	_ "go.trai.ch/strata/internal/adapters/logger"
	_ "go.trai.ch/strata/internal/adapters/manifest"
	_ "go.trai.ch/strata/internal/adapters/report"
	_ "go.trai.ch/strata/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/strata/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/strata/internal/app"
	_ "go.trai.ch/strata/internal/engine/checker"
)
