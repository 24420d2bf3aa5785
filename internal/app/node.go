package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tcbuild/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tcbuild/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/tcbuild/internal/adapters/journal"            //nolint:depguard // Wired in app layer
	"go.trai.ch/tcbuild/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tcbuild/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/tcbuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/tcbuild/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			fs.NodeID,
			logger.NodeID,
			progrock.NodeID,
			journal.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	fileSystem, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	journals, err := graft.Dep[ports.JournalOpener](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, fileSystem, log, tel, journals), nil
}
