package domain

import (
	"path/filepath"
	"runtime"
)

// Settings holds the values that may come from the settings file or command-line overrides.
type Settings struct {
	Target     string
	Prefix     string
	SourceRoot string
	Jobs       int
	Compiler   string
}

// DefaultSettings returns the settings used when nothing overrides them.
func DefaultSettings(toolRoot string) Settings {
	return Settings{
		Target:     DefaultTarget,
		Prefix:     filepath.Join(toolRoot, InstallDirName),
		SourceRoot: filepath.Join(toolRoot, SourceDirName),
		Jobs:       runtime.NumCPU(),
	}
}

// Merge returns s with every non-zero field of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	if o.Target != "" {
		s.Target = o.Target
	}
	if o.Prefix != "" {
		s.Prefix = o.Prefix
	}
	if o.SourceRoot != "" {
		s.SourceRoot = o.SourceRoot
	}
	if o.Jobs != 0 {
		s.Jobs = o.Jobs
	}
	if o.Compiler != "" {
		s.Compiler = o.Compiler
	}
	return s
}

// Validate checks the settings for values no run can use.
func (s Settings) Validate() error {
	if s.Jobs < 1 {
		return ErrInvalidJobs
	}
	return nil
}
