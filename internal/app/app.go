// Package app implements the application layer for tcbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/tcbuild/internal/adapters/dryrun"
	"go.trai.ch/tcbuild/internal/adapters/shell"
	"go.trai.ch/tcbuild/internal/adapters/telemetry"
	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
	"go.trai.ch/tcbuild/internal/engine/planner"
	"go.trai.ch/tcbuild/internal/engine/runner"
	"go.trai.ch/tcbuild/internal/engine/scheduler"
	"go.trai.ch/tcbuild/internal/ui/style"
	"go.trai.ch/zerr"
)

// ToolRootEnv overrides the directory holding sources, build trees and the settings file.
const ToolRootEnv = "TCBUILD_ROOT"

// outputSwitcher is implemented by loggers whose destination can be changed.
type outputSwitcher interface {
	Output() io.Writer
	SetOutput(w io.Writer)
}

// timingReporter is implemented by telemetry that can report the duration of recorded steps.
type timingReporter interface {
	Timings() []domain.StepTiming
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	fs           ports.FileSystem
	logger       ports.Logger
	telemetry    ports.Telemetry
	journals     ports.JournalOpener

	toolRoot string
	workDir  string
	stdout   io.Writer
	stderr   io.Writer
	newProbe func(dirs ...string) ports.HostProbe
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	fs ports.FileSystem,
	log ports.Logger,
	tel ports.Telemetry,
	journals ports.JournalOpener,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		fs:           fs,
		logger:       log,
		telemetry:    tel,
		journals:     journals,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		newProbe: func(dirs ...string) ports.HostProbe {
			return shell.NewProbe(dirs...)
		},
	}
}

// WithToolRoot fixes the tool root instead of deriving it from the environment or executable.
func (a *App) WithToolRoot(dir string) *App {
	a.toolRoot = dir
	return a
}

// WithWorkDir sets the directory --build-here places the build root in.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithOutput sets where subprocess output is echoed.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithHostProbe replaces how the host search path is probed for installed tools.
func (a *App) WithHostProbe(newProbe func(dirs ...string) ports.HostProbe) *App {
	a.newProbe = newProbe
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Config domain.RunConfig
	// ConfigPath names a settings file that must exist. Empty means the optional
	// tcbuild.yaml in the tool root.
	ConfigPath string
	// Prefix and Jobs override the settings file when set.
	Prefix string
	Jobs   int
}

// Run builds the selected projects of the toolchain in order.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.Config.Silent() {
		if sw, ok := a.logger.(outputSwitcher); ok {
			previous := sw.Output()
			sw.SetOutput(io.Discard)
			defer sw.SetOutput(previous)
		}
	}

	layout, err := a.layout(opts)
	if err != nil {
		return err
	}

	catalog := domain.DefaultCatalog(layout.Target)
	plan, err := planner.New(catalog, opts.Config, a.newProbe(layout.BinDir()))
	if err != nil {
		return err
	}

	sched := scheduler.NewScheduler(plan, a.runner(layout, opts.Config), a.logger, domain.NewToolchainState())
	report, err := sched.Run(ctx)
	if !opts.Config.DryRun {
		if closeErr := a.telemetry.Close(); closeErr != nil {
			a.logger.Warn("failed to close progress recording: " + closeErr.Error())
		}
		a.reportTimings()
	}
	if err != nil {
		return err
	}

	a.summarize(report, opts.Config)
	return nil
}

// ListProjects writes the catalog's project names to w, one per line, in build order.
// Names do not depend on any setting, so neither the settings file nor the flags are read.
func (a *App) ListProjects(_ context.Context, _ RunOptions, w io.Writer) error {
	for _, name := range domain.DefaultCatalog(domain.DefaultTarget).Names() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) runner(layout domain.Layout, cfg domain.RunConfig) *runner.Runner {
	executor, fs, tel := a.executor, a.fs, a.telemetry
	opts := []runner.Option{runner.WithOutput(a.stdout, a.stderr)}

	if cfg.DryRun {
		executor = dryrun.NewExecutor(a.logger)
		fs = dryrun.NewFileSystem(a.fs, a.logger)
		tel = telemetry.NewNoOp()
	} else if journal, err := a.journals.Open(layout.JournalPath()); err != nil {
		a.logger.Warn("build journal disabled: " + err.Error())
	} else {
		opts = append(opts, runner.WithJournal(journal))
	}

	return runner.New(executor, fs, a.logger, tel, layout, cfg, opts...)
}

func (a *App) summarize(report *scheduler.Report, cfg domain.RunConfig) {
	verb := "built"
	if cfg.DryRun {
		verb = "would build"
	}

	if built := report.Built(); len(built) > 0 {
		a.logger.Info(style.Check + " " + verb + ": " + strings.Join(built, ", "))
	} else {
		a.logger.Info(style.Check + " nothing to build")
	}

	for _, o := range report.Outcomes {
		if o.Status == scheduler.StatusSkipped {
			a.logger.Info(style.Skip + " skipped " + o.Project + ": " + o.Reason)
		}
	}
}

// reportTimings logs how long each recorded step took.
func (a *App) reportTimings() {
	tr, ok := a.telemetry.(timingReporter)
	if !ok {
		return
	}
	for _, t := range tr.Timings() {
		a.logger.Info(describeTiming(t))
	}
}

func describeTiming(t domain.StepTiming) string {
	switch {
	case t.Cached:
		return t.Name + " was up to date"
	case t.Failed:
		return t.Name + " failed after " + roundDuration(t.Duration).String()
	}

	msg := t.Name + " took " + roundDuration(t.Duration).String()
	switch t.Lines {
	case 0:
		return msg
	case 1:
		return msg + " (1 line of output)"
	default:
		return msg + " (" + strconv.Itoa(t.Lines) + " lines of output)"
	}
}

func roundDuration(d time.Duration) time.Duration {
	if d >= time.Second {
		return d.Round(time.Second)
	}
	return d.Round(time.Millisecond)
}

// layout resolves the effective settings and derives every path of the run from them.
func (a *App) layout(opts RunOptions) (domain.Layout, error) {
	toolRoot, err := a.resolveToolRoot()
	if err != nil {
		return domain.Layout{}, err
	}

	settings, err := a.settings(toolRoot, opts)
	if err != nil {
		return domain.Layout{}, err
	}

	workDir := a.workDir
	if opts.Config.BuildHere && workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return domain.Layout{}, zerr.Wrap(err, "failed to determine working directory")
		}
	}

	return domain.NewLayout(toolRoot, workDir, settings, opts.Config.BuildHere), nil
}

func (a *App) settings(toolRoot string, opts RunOptions) (domain.Settings, error) {
	s := domain.DefaultSettings(toolRoot)

	path := opts.ConfigPath
	if path == "" {
		path = filepath.Join(toolRoot, domain.SettingsFileName)
	}

	loaded, err := a.configLoader.Load(path)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load settings")
	}
	if loaded == nil && opts.ConfigPath != "" {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "cannot load settings"), "path", path)
	}
	if loaded != nil {
		s = s.Merge(*loaded)
	}

	if opts.Prefix != "" {
		prefix, err := filepath.Abs(opts.Prefix)
		if err != nil {
			return domain.Settings{}, zerr.Wrap(err, "failed to resolve prefix")
		}
		s.Prefix = prefix
	}
	if opts.Jobs != 0 {
		s.Jobs = opts.Jobs
	}

	if err := s.Validate(); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "invalid settings"), "jobs", s.Jobs)
	}
	return s, nil
}

func (a *App) resolveToolRoot() (string, error) {
	if a.toolRoot != "" {
		return a.toolRoot, nil
	}

	if root := os.Getenv(ToolRootEnv); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", errors.Join(domain.ErrToolRootUnresolved, err)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", errors.Join(domain.ErrToolRootUnresolved, err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
