// Package commands implements the command line interface of tcbuild.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tcbuild/internal/app"
	"go.trai.ch/tcbuild/internal/build"
	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for tcbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	ListProjects(ctx context.Context, opts app.RunOptions, w io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "tcbuild",
		Short: "Build an arm-none-eabi cross toolchain from source",
		Long: "tcbuild configures, builds and installs binutils, GCC and newlib in dependency order,\n" +
			"bootstrapping the compiler when none is installed and staging the newlib-nano libraries.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRoot,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.Flags()
	flags.BoolP("quiet", "q", false, "Print progress messages only, not the output of configure and make")
	flags.BoolP("silent", "s", false, "Print nothing except a final error")
	flags.BoolP("dry-run", "d", false, "Print the commands that would run without running them")
	flags.StringSlice("skip", nil, "Projects to leave out (comma separated, repeatable)")
	flags.StringSlice("only", nil, "Build only these projects (comma separated, repeatable)")
	flags.Bool("list-projects", false, "List the project names in build order and exit")
	flags.Bool("no-install", false, "Configure and build without installing")
	flags.Bool("reconfigure", false, "Run configure even when the build directory is up to date")
	flags.Bool("force", false, "Build projects even when their condition does not hold")
	flags.Bool("build-here", false, "Place build directories under the current directory")
	flags.IntP("jobs", "j", 0, "Parallel make jobs (default: number of CPUs)")
	flags.String("prefix", "", "Install prefix (default: <tool root>/install)")
	flags.String("config", "", "Settings file (default: <tool root>/tcbuild.yaml if present)")

	c.rootCmd = rootCmd
	return c
}

func (c *CLI) runRoot(cmd *cobra.Command, _ []string) error {
	opts, err := runOptions(cmd)
	if err != nil {
		return err
	}

	// Usage is printed for invalid invocations only, not for build failures.
	cmd.SilenceUsage = true

	if list, _ := cmd.Flags().GetBool("list-projects"); list {
		return c.app.ListProjects(cmd.Context(), opts, cmd.OutOrStdout())
	}

	err = c.app.Run(cmd.Context(), opts)
	if errors.Is(err, domain.ErrUnknownProject) {
		cmd.SilenceUsage = false
	}
	return err
}

// runOptions validates the flags into the options of one run.
func runOptions(cmd *cobra.Command) (app.RunOptions, error) {
	flags := cmd.Flags()

	quiet, _ := flags.GetBool("quiet")
	silent, _ := flags.GetBool("silent")
	verbosity, err := domain.VerbosityFromFlags(quiet, silent)
	if err != nil {
		return app.RunOptions{}, err
	}

	jobs, _ := flags.GetInt("jobs")
	if flags.Changed("jobs") && jobs < 1 {
		return app.RunOptions{}, zerr.With(zerr.Wrap(domain.ErrInvalidJobs, "invalid --jobs"), "jobs", jobs)
	}

	dryRun, _ := flags.GetBool("dry-run")
	skip, _ := flags.GetStringSlice("skip")
	only, _ := flags.GetStringSlice("only")
	noInstall, _ := flags.GetBool("no-install")
	reconfigure, _ := flags.GetBool("reconfigure")
	force, _ := flags.GetBool("force")
	buildHere, _ := flags.GetBool("build-here")

	cfg, err := domain.NewRunConfig(domain.RunConfig{
		Verbosity:   verbosity,
		DryRun:      dryRun,
		Skip:        skip,
		Only:        only,
		NoInstall:   noInstall,
		Reconfigure: reconfigure,
		Force:       force,
		BuildHere:   buildHere,
	})
	if err != nil {
		return app.RunOptions{}, err
	}

	prefix, _ := flags.GetString("prefix")
	configPath, _ := flags.GetString("config")

	return app.RunOptions{
		Config:     cfg,
		ConfigPath: configPath,
		Prefix:     prefix,
		Jobs:       jobs,
	}, nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
