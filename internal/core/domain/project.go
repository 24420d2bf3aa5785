package domain

// PredicateKind selects how a build predicate is evaluated.
type PredicateKind int

const (
	// PredicateNone means the project is always eligible.
	PredicateNone PredicateKind = iota
	// PredicateBuiltThisRun holds when the named project was built earlier in this run.
	PredicateBuiltThisRun
	// PredicateToolMissing holds when the named executable is not on the search path.
	PredicateToolMissing
	// PredicateToolPresent holds when the named executable is on the search path.
	PredicateToolPresent
)

// String returns a short description of the kind.
func (k PredicateKind) String() string {
	switch k {
	case PredicateBuiltThisRun:
		return "built-this-run"
	case PredicateToolMissing:
		return "tool-missing"
	case PredicateToolPresent:
		return "tool-present"
	default:
		return "none"
	}
}

// Predicate decides whether a project is eligible to build.
// Arg is a project name or an executable name depending on Kind; Not inverts the result.
type Predicate struct {
	Kind PredicateKind
	Arg  string
	Not  bool
}

// Always is the predicate of projects that build unconditionally.
var Always = Predicate{Kind: PredicateNone}

// BuiltThisRun returns a predicate holding when project was built in the current run.
func BuiltThisRun(project string) Predicate {
	return Predicate{Kind: PredicateBuiltThisRun, Arg: project}
}

// ToolMissing returns a predicate holding when tool cannot be found.
func ToolMissing(tool string) Predicate {
	return Predicate{Kind: PredicateToolMissing, Arg: tool}
}

// ToolPresent returns a predicate holding when tool can be found.
func ToolPresent(tool string) Predicate {
	return Predicate{Kind: PredicateToolPresent, Arg: tool}
}

// Negate returns the inverse predicate.
func (p Predicate) Negate() Predicate {
	p.Not = !p.Not
	return p
}

// IsAlways reports whether the predicate places no condition on the project.
func (p Predicate) IsAlways() bool {
	return p.Kind == PredicateNone && !p.Not
}

// Eval evaluates the predicate against what has been built so far and the host tools.
func (p Predicate) Eval(built StateSnapshot, hasTool func(name string) bool) bool {
	var result bool
	switch p.Kind {
	case PredicateBuiltThisRun:
		result = built.Built(p.Arg)
	case PredicateToolMissing:
		result = !hasTool(p.Arg)
	case PredicateToolPresent:
		result = hasTool(p.Arg)
	default:
		result = true
	}
	if p.Not {
		return !result
	}
	return result
}

// String describes the predicate for log output.
func (p Predicate) String() string {
	s := p.Kind.String()
	if p.Arg != "" {
		s += "(" + p.Arg + ")"
	}
	if p.Not {
		s = "not " + s
	}
	return s
}

// InstallAction selects how a project is installed into the prefix.
type InstallAction int

const (
	// InstallDefault runs the project's own install target.
	InstallDefault InstallAction = iota
	// InstallNano stages the reduced-footprint C library next to the regular one.
	InstallNano
)

// String returns the action name.
func (a InstallAction) String() string {
	if a == InstallNano {
		return "nano"
	}
	return "default"
}

// Project describes one subproject of the toolchain build.
type Project struct {
	// Name identifies the project on the command line and names its build directory.
	Name string
	// SourceSubdir is the source tree under the source root. Empty means Name.
	SourceSubdir string
	// ConfigureArgs follow the global --target and --prefix flags.
	ConfigureArgs []string
	Predicate     Predicate
	Install       InstallAction
}

// Source returns the source subdirectory of the project.
func (p Project) Source() string {
	if p.SourceSubdir == "" {
		return p.Name
	}
	return p.SourceSubdir
}
