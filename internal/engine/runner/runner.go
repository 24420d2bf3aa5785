// Package runner configures, builds and installs a single project.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner performs the configure, build and install steps of one project.
type Runner struct {
	executor  ports.Executor
	fs        ports.FileSystem
	logger    ports.Logger
	telemetry ports.Telemetry
	journal   ports.Journal
	layout    domain.Layout
	cfg       domain.RunConfig
	stdout    io.Writer
	stderr    io.Writer
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where subprocess output is echoed unless the run is quiet.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithJournal enables recording completed builds and detecting changed configure flags.
func WithJournal(j ports.Journal) Option {
	return func(r *Runner) {
		r.journal = j
	}
}

// WithClock overrides the time source used for journal entries.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a Runner.
func New(
	executor ports.Executor,
	fs ports.FileSystem,
	logger ports.Logger,
	telemetry ports.Telemetry,
	layout domain.Layout,
	cfg domain.RunConfig,
	opts ...Option,
) *Runner {
	r := &Runner{
		executor:  executor,
		fs:        fs,
		logger:    logger,
		telemetry: telemetry,
		layout:    layout,
		cfg:       cfg,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run configures (when stale), builds and installs p inside its build directory.
func (r *Runner) Run(ctx context.Context, p domain.Project) error {
	buildDir := r.layout.BuildDir(p)
	if err := r.fs.MkdirAll(buildDir); err != nil {
		return errors.Join(domain.ErrBuildDirCreateFailed, zerr.With(zerr.Wrap(err, p.Name+" build directory"), "path", buildDir))
	}

	configure := r.configureCommand(p)
	configured, err := r.configure(ctx, p, configure)
	if err != nil {
		return err
	}

	if err := r.step(ctx, p, domain.StepBuild, r.makeCommand(p)); err != nil {
		return err
	}

	if r.cfg.NoInstall {
		r.logger.Info(p.Name + ": install skipped")
	} else if err := r.install(ctx, p); err != nil {
		return err
	}

	r.record(p, configure, configured)
	return nil
}

func (r *Runner) env() []string {
	return []string{"PATH=" + r.layout.BinDir()}
}

func (r *Runner) configureCommand(p domain.Project) domain.Command {
	args := r.layout.GlobalConfigureArgs()
	args = append(args, p.ConfigureArgs...)
	return domain.Command{
		Dir:  r.layout.BuildDir(p),
		Path: r.layout.ConfigureScript(p),
		Args: args,
		Env:  r.env(),
	}
}

func (r *Runner) makeCommand(p domain.Project, targets ...string) domain.Command {
	args := append([]string{r.layout.MakeJobsArg()}, targets...)
	return domain.Command{
		Dir:  r.layout.BuildDir(p),
		Path: "make",
		Args: args,
		Env:  r.env(),
	}
}

// configure runs the configure step unless the build directory is up to date.
// It reports whether configure ran.
func (r *Runner) configure(ctx context.Context, p domain.Project, cmd domain.Command) (bool, error) {
	stale, err := r.needsConfigure(p)
	if err != nil {
		return false, err
	}

	if !stale {
		_, v := r.telemetry.Record(ctx, domain.VertexName(p.Name, domain.StepConfigure))
		v.Cached()
		v.Complete(nil)
		r.logger.Info(p.Name + ": configure is up to date")
		r.checkFlags(p, cmd)
		return false, nil
	}

	return true, r.step(ctx, p, domain.StepConfigure, cmd)
}

// needsConfigure compares the configure artifact against the configure script.
// A missing script is fatal, even when reconfiguration is forced.
func (r *Runner) needsConfigure(p domain.Project) (bool, error) {
	script := r.layout.ConfigureScript(p)
	scriptTime, ok, err := r.fs.ModTime(script)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, zerr.With(zerr.Wrap(domain.ErrSourceMissing, "cannot configure "+p.Name), "path", script)
	}

	if r.cfg.Reconfigure {
		return true, nil
	}

	artifactTime, ok, err := r.fs.ModTime(r.layout.ConfigArtifact(p))
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return !artifactTime.After(scriptTime), nil
}

func (r *Runner) install(ctx context.Context, p domain.Project) error {
	switch p.Install {
	case domain.InstallNano:
		return r.installNano(ctx, p)
	default:
		return r.step(ctx, p, domain.StepInstall, r.makeCommand(p, "install"))
	}
}

// step runs one external command as a recorded vertex.
func (r *Runner) step(ctx context.Context, p domain.Project, step domain.Step, cmd domain.Command) error {
	r.logger.Info(p.Name + ": " + string(step))

	ctx, v := r.telemetry.Record(ctx, domain.VertexName(p.Name, step))
	stdout, stderr := v.Stdout(), v.Stderr()
	if !r.cfg.Quiet() {
		stdout = io.MultiWriter(r.stdout, stdout)
		stderr = io.MultiWriter(r.stderr, stderr)
	}

	err := r.executor.Run(ctx, cmd, stdout, stderr)
	v.Complete(err)
	if err != nil {
		return stepError(p, step, cmd, err)
	}
	return nil
}

func stepError(p domain.Project, step domain.Step, cmd domain.Command, err error) error {
	wrapped := zerr.Wrap(err, p.Name+" "+string(step)+" failed")
	wrapped = zerr.With(wrapped, "command", cmd.String())
	return errors.Join(domain.ErrStepFailed, wrapped)
}

// checkFlags warns when the configure command line differs from the one the
// build directory was last built with.
func (r *Runner) checkFlags(p domain.Project, cmd domain.Command) {
	if r.journal == nil {
		return
	}
	entry, err := r.journal.Get(p.Name)
	if err != nil {
		r.logger.Warn(p.Name + ": cannot read build journal: " + err.Error())
		return
	}
	if entry != nil && entry.Fingerprint != r.journal.Fingerprint(cmd) {
		r.logger.Warn(p.Name + ": configure flags changed since the last build; rerun with --reconfigure to apply them")
	}
}

// record stores the completed build in the journal. Journal failures only warn.
func (r *Runner) record(p domain.Project, cmd domain.Command, configured bool) {
	if r.journal == nil || r.cfg.DryRun {
		return
	}

	fingerprint := r.journal.Fingerprint(cmd)
	if !configured {
		if entry, err := r.journal.Get(p.Name); err == nil && entry != nil {
			fingerprint = entry.Fingerprint
		}
	}

	err := r.journal.Put(domain.JournalEntry{
		Project:     p.Name,
		Fingerprint: fingerprint,
		CompletedAt: r.now().UTC(),
	})
	if err != nil {
		r.logger.Warn(p.Name + ": cannot update build journal: " + err.Error())
	}
}
