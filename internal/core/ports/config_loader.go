package ports

import "go.trai.ch/strata/internal/core/domain"

// ConfigLoader defines the interface for loading the rule file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the rule file at path. An empty path searches the working directory.
	Load(path string) (*domain.Config, error)
}
