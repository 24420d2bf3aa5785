package ports

import "go.trai.ch/tcbuild/internal/core/domain"

// ConfigLoader reads the optional settings file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load parses the settings file at path.
	// Returns nil, nil if the file does not exist.
	Load(path string) (*domain.Settings, error)
}
