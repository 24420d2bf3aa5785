package domain

import "strings"

// Step names a phase of a project build.
type Step string

const (
	// StepConfigure runs the project's configure script.
	StepConfigure Step = "configure"
	// StepBuild runs make.
	StepBuild Step = "build"
	// StepInstall installs into the prefix.
	StepInstall Step = "install"
)

// DryRunPrefix starts every line that describes an operation a dry run skipped.
const DryRunPrefix = "[dry-run] "

// Command is one external program invocation.
type Command struct {
	// Dir is the working directory.
	Dir string
	// Path is the program to run, either absolute or looked up on PATH.
	Path string
	Args []string
	// Env holds KEY=VALUE overrides. A PATH entry is prepended to the inherited PATH.
	Env []string
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Path)
	return append(argv, c.Args...)
}

// String renders the command as a shell command line.
func (c Command) String() string {
	argv := c.Argv()
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = shellQuote(a)
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
