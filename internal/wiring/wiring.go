// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tcbuild/internal/adapters/config"
	_ "go.trai.ch/tcbuild/internal/adapters/fs"
	_ "go.trai.ch/tcbuild/internal/adapters/journal"
	_ "go.trai.ch/tcbuild/internal/adapters/logger"
	_ "go.trai.ch/tcbuild/internal/adapters/shell"
	_ "go.trai.ch/tcbuild/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/tcbuild/internal/app"
)
