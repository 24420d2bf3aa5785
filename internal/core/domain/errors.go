package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateProject is returned when two catalog entries share the same name.
	ErrDuplicateProject = zerr.New("duplicate project name")

	// ErrUnknownProject is returned when a skip or only list names a project that is not in the catalog.
	ErrUnknownProject = zerr.New("unknown project")

	// ErrSkipOnlyExclusive is returned when both a skip list and an only list are given.
	ErrSkipOnlyExclusive = zerr.New("--skip and --only cannot be used together")

	// ErrConflictingVerbosity is returned when quiet and silent are requested at the same time.
	ErrConflictingVerbosity = zerr.New("--quiet and --silent cannot be used together")

	// ErrInvalidVerbosity is returned when a verbosity value is outside the known levels.
	ErrInvalidVerbosity = zerr.New("invalid verbosity")

	// ErrInvalidJobs is returned when the make parallelism is not a positive number.
	ErrInvalidJobs = zerr.New("jobs must be a positive number")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when an explicitly requested settings file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrToolRootUnresolved is returned when the tool root directory cannot be determined.
	ErrToolRootUnresolved = zerr.New("failed to determine tool root")

	// ErrSourceMissing is returned when a project's configure script does not exist.
	ErrSourceMissing = zerr.New("configure script not found")

	// ErrStepFailed is returned when an external configure, build or install command fails.
	ErrStepFailed = zerr.New("build step failed")

	// ErrMultilibQuery is returned when the cross compiler cannot report its multilib set.
	ErrMultilibQuery = zerr.New("failed to query compiler multilibs")

	// ErrStageFailed is returned when a file cannot be staged into the install prefix.
	ErrStageFailed = zerr.New("failed to stage file")

	// ErrBuildDirCreateFailed is returned when a project build directory cannot be created.
	ErrBuildDirCreateFailed = zerr.New("failed to create build directory")

	// ErrPathStatFailed is returned when stating a path fails for a reason other than absence.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrJournalReadFailed is returned when the build journal cannot be read.
	ErrJournalReadFailed = zerr.New("failed to read build journal")

	// ErrJournalWriteFailed is returned when the build journal cannot be written.
	ErrJournalWriteFailed = zerr.New("failed to write build journal")
)
