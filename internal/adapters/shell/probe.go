package shell

import (
	"os"
	"strings"

	"go.trai.ch/tcbuild/internal/core/ports"
)

// Probe implements ports.HostProbe by searching PATH.
type Probe struct {
	env []string
}

// NewProbe creates a Probe searching extraDirs ahead of the process PATH.
func NewProbe(extraDirs ...string) *Probe {
	var overrides []string
	if len(extraDirs) > 0 {
		overrides = []string{"PATH=" + strings.Join(extraDirs, string(os.PathListSeparator))}
	}
	return &Probe{env: resolveEnvironment(os.Environ(), overrides)}
}

var _ ports.HostProbe = (*Probe)(nil)

// HasTool reports whether name resolves to an executable on the search path.
func (p *Probe) HasTool(name string) bool {
	_, err := lookPath(name, p.env)
	return err == nil
}
