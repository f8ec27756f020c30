package app

import "go.trai.ch/strata/internal/core/ports"

// Components holds what the command line needs beyond the App.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}
