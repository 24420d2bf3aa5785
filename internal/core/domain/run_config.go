package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Verbosity controls how much a run prints.
type Verbosity int

const (
	// VerbosityNormal prints orchestrator messages and subprocess output.
	VerbosityNormal Verbosity = iota
	// VerbosityQuiet prints orchestrator messages but drops subprocess output.
	VerbosityQuiet
	// VerbositySilent prints nothing but the final error report.
	VerbositySilent
)

// String returns the verbosity name.
func (v Verbosity) String() string {
	switch v {
	case VerbosityQuiet:
		return "quiet"
	case VerbositySilent:
		return "silent"
	default:
		return "normal"
	}
}

// VerbosityFromFlags maps the --quiet and --silent flags to a Verbosity.
func VerbosityFromFlags(quiet, silent bool) (Verbosity, error) {
	switch {
	case quiet && silent:
		return VerbosityNormal, ErrConflictingVerbosity
	case silent:
		return VerbositySilent, nil
	case quiet:
		return VerbosityQuiet, nil
	default:
		return VerbosityNormal, nil
	}
}

// RunConfig is the validated set of options for one invocation.
// It is produced once by NewRunConfig and passed by value afterwards.
type RunConfig struct {
	Verbosity   Verbosity
	DryRun      bool
	Skip        []string
	Only        []string
	NoInstall   bool
	Reconfigure bool
	Force       bool
	BuildHere   bool
}

// NewRunConfig normalizes the name lists of c and validates it.
// Names are trimmed, empty entries dropped and duplicates removed.
func NewRunConfig(c RunConfig) (RunConfig, error) {
	c.Skip = normalizeNames(c.Skip)
	c.Only = normalizeNames(c.Only)

	if len(c.Skip) > 0 && len(c.Only) > 0 {
		return RunConfig{}, ErrSkipOnlyExclusive
	}
	if c.Verbosity < VerbosityNormal || c.Verbosity > VerbositySilent {
		return RunConfig{}, zerr.With(zerr.Wrap(ErrInvalidVerbosity, "cannot build run config"), "verbosity", int(c.Verbosity))
	}
	return c, nil
}

// Quiet reports whether subprocess output is suppressed.
func (c RunConfig) Quiet() bool {
	return c.Verbosity != VerbosityNormal
}

// Silent reports whether orchestrator messages are suppressed.
func (c RunConfig) Silent() bool {
	return c.Verbosity == VerbositySilent
}

func normalizeNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
