package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tcbuild/internal/core/ports"
)

// NodeID is the unique identifier for the journal opener Graft node.
const NodeID graft.ID = "adapter.journal"

func init() {
	graft.Register(graft.Node[ports.JournalOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.JournalOpener, error) {
			return NewOpener(), nil
		},
	})
}
