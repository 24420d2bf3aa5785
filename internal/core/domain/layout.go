package domain

import (
	"path/filepath"
	"strconv"
)

const (
	// DefaultTarget is the target triple the toolchain is built for.
	DefaultTarget = "arm-none-eabi"

	// SourceDirName is the directory under the tool root holding project sources.
	SourceDirName = "src"

	// BuildDirName is the directory holding per-project build trees.
	BuildDirName = "build"

	// InstallDirName is the default install prefix under the tool root.
	InstallDirName = "install"

	// SettingsFileName is the name of the optional settings file in the tool root.
	SettingsFileName = "tcbuild.yaml"

	// JournalFileName is the name of the build journal inside the build root.
	JournalFileName = ".tcbuild-journal.json"

	// ConfigureScriptName is the autoconf entry point inside a project source tree.
	ConfigureScriptName = "configure"

	// ConfigArtifactName is the file configure leaves in the build directory.
	ConfigArtifactName = "config.status"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout resolves every filesystem location used during a run.
type Layout struct {
	ToolRoot   string
	SourceRoot string
	BuildRoot  string
	Prefix     string
	Target     string
	Jobs       int
	Compiler   string
}

// NewLayout derives a Layout from the effective settings. When buildHere is set the
// build root is placed under workDir instead of the tool root.
func NewLayout(toolRoot, workDir string, s Settings, buildHere bool) Layout {
	buildBase := toolRoot
	if buildHere {
		buildBase = workDir
	}

	compiler := s.Compiler
	if compiler == "" {
		compiler = s.Target + "-gcc"
	}

	return Layout{
		ToolRoot:   toolRoot,
		SourceRoot: s.SourceRoot,
		BuildRoot:  filepath.Join(buildBase, BuildDirName),
		Prefix:     s.Prefix,
		Target:     s.Target,
		Jobs:       s.Jobs,
		Compiler:   compiler,
	}
}

// SourceDir returns the source tree of a project.
func (l Layout) SourceDir(p Project) string {
	return filepath.Join(l.SourceRoot, p.Source())
}

// BuildDir returns the build directory of a project.
func (l Layout) BuildDir(p Project) string {
	return filepath.Join(l.BuildRoot, p.Name)
}

// ConfigureScript returns the path of the project's configure script.
func (l Layout) ConfigureScript(p Project) string {
	return filepath.Join(l.SourceDir(p), ConfigureScriptName)
}

// ConfigArtifact returns the path of the file marking a configured build directory.
func (l Layout) ConfigArtifact(p Project) string {
	return filepath.Join(l.BuildDir(p), ConfigArtifactName)
}

// BinDir returns the directory installed executables land in.
func (l Layout) BinDir() string {
	return filepath.Join(l.Prefix, "bin")
}

// CompilerPath returns the installed cross compiler queried for multilibs.
func (l Layout) CompilerPath() string {
	return filepath.Join(l.BinDir(), l.Compiler)
}

// TargetLibDir returns the target library directory inside the prefix.
func (l Layout) TargetLibDir() string {
	return filepath.Join(l.Prefix, l.Target, "lib")
}

// TargetIncludeDir returns the target header directory inside the prefix.
func (l Layout) TargetIncludeDir() string {
	return filepath.Join(l.Prefix, l.Target, "include")
}

// JournalPath returns the location of the build journal.
func (l Layout) JournalPath() string {
	return filepath.Join(l.BuildRoot, JournalFileName)
}

// GlobalConfigureArgs returns the flags every configure invocation starts with.
func (l Layout) GlobalConfigureArgs() []string {
	return []string{"--target=" + l.Target, "--prefix=" + l.Prefix}
}

// MakeJobsArg returns the parallelism argument passed to make.
func (l Layout) MakeJobsArg() string {
	return "-j" + strconv.Itoa(l.Jobs)
}
