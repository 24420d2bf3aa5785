package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcbuild/internal/adapters/fs"
	"go.trai.ch/tcbuild/internal/adapters/journal"
	"go.trai.ch/tcbuild/internal/adapters/logger"
	"go.trai.ch/tcbuild/internal/adapters/telemetry"
	tcprogrock "go.trai.ch/tcbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/tcbuild/internal/app"
	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
	"go.trai.ch/tcbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	toolRoot string
	logs     *bytes.Buffer
	logger   *logger.Logger
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	journals *mocks.MockJournalOpener
	app      *app.App
}

// newFixture lays out a tool root with the configure scripts of every catalog project.
func newFixture(t *testing.T, compilerOnHost bool) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	root := t.TempDir()
	for _, src := range []string{"binutils", "gcc", "newlib"} {
		dir := filepath.Join(root, domain.SourceDirName, src)
		require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
		require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigureScriptName), []byte("#!/bin/sh\n"), 0o755))
	}

	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHostProbe(ctrl)
	probe.EXPECT().HasTool("arm-none-eabi-gcc").Return(compilerOnHost).AnyTimes()

	f := &fixture{
		toolRoot: root,
		logs:     &bytes.Buffer{},
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		journals: mocks.NewMockJournalOpener(ctrl),
	}
	f.logger = logger.NewWithWriter(f.logs)
	f.app = app.New(f.loader, f.executor, fs.New(), f.logger, telemetry.NewNoOp(), f.journals).
		WithToolRoot(root).
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}).
		WithHostProbe(func(...string) ports.HostProbe { return probe })
	return f
}

func (f *fixture) expectDefaultSettings() {
	f.loader.EXPECT().Load(filepath.Join(f.toolRoot, domain.SettingsFileName)).Return(nil, nil)
}

func runConfig(t *testing.T, c domain.RunConfig) domain.RunConfig {
	t.Helper()
	cfg, err := domain.NewRunConfig(c)
	require.NoError(t, err)
	return cfg
}

func TestApp_Run_DryRun(t *testing.T) {
	f := newFixture(t, false)
	f.expectDefaultSettings()

	err := f.app.Run(context.Background(), app.RunOptions{
		Config: runConfig(t, domain.RunConfig{DryRun: true}),
		Jobs:   3,
	})

	require.NoError(t, err)
	out := f.logs.String()
	assert.Contains(t, out, "[dry-run] mkdir -p "+filepath.Join(f.toolRoot, "build", "binutils"))
	assert.Contains(t, out, "[dry-run] cd "+filepath.Join(f.toolRoot, "build", "gcc")+" && make -j3 install")
	assert.Contains(t, out, "would build: binutils, gcc-bootstrap, newlib, gcc, newlib-nano")

	_, statErr := os.Stat(filepath.Join(f.toolRoot, domain.BuildDirName))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "dry run must not create the build root")
}

func TestApp_Run_DryRunWithCompilerInstalled(t *testing.T) {
	f := newFixture(t, true)
	f.expectDefaultSettings()

	err := f.app.Run(context.Background(), app.RunOptions{
		Config: runConfig(t, domain.RunConfig{DryRun: true}),
	})

	require.NoError(t, err)
	out := f.logs.String()
	assert.Contains(t, out, "would build: binutils, newlib, newlib-nano")
	assert.Contains(t, out, "skipped gcc-bootstrap: tool-missing(arm-none-eabi-gcc) does not hold")
	assert.Contains(t, out, "skipped gcc: built-this-run(gcc-bootstrap) does not hold")
}

func TestApp_Run_BuildHere(t *testing.T) {
	f := newFixture(t, true)
	f.expectDefaultSettings()
	workDir := t.TempDir()
	f.app.WithWorkDir(workDir)

	err := f.app.Run(context.Background(), app.RunOptions{
		Config: runConfig(t, domain.RunConfig{DryRun: true, BuildHere: true, Only: []string{"binutils"}}),
	})

	require.NoError(t, err)
	assert.Contains(t, f.logs.String(), "[dry-run] mkdir -p "+filepath.Join(workDir, "build", "binutils"))
}

func TestApp_Run_Silent(t *testing.T) {
	f := newFixture(t, true)
	f.expectDefaultSettings()

	err := f.app.Run(context.Background(), app.RunOptions{
		Config: runConfig(t, domain.RunConfig{DryRun: true, Verbosity: domain.VerbositySilent}),
	})

	require.NoError(t, err)
	assert.Empty(t, f.logs.String())
	assert.Same(t, f.logs, f.logger.Output(), "logger output must be restored after the run")
}

func TestApp_Run_Build(t *testing.T) {
	f := newFixture(t, true)
	f.expectDefaultSettings()

	journalPath := filepath.Join(f.toolRoot, domain.BuildDirName, domain.JournalFileName)
	f.journals.EXPECT().Open(journalPath).DoAndReturn(func(path string) (ports.Journal, error) {
		return journal.NewStore(path)
	})

	var commands []string
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _, _ io.Writer) error {
			commands = append(commands, cmd.String())
			return nil
		}).Times(3)

	err := f.app.Run(context.Background(), app.RunOptions{
		Config: runConfig(t, domain.RunConfig{Only: []string{"binutils"}}),
		Jobs:   2,
	})

	require.NoError(t, err)
	require.Len(t, commands, 3)
	assert.True(t, strings.HasPrefix(commands[0], filepath.Join(f.toolRoot, "src", "binutils", "configure")+" --target=arm-none-eabi"))
	assert.Equal(t, []string{"make -j2", "make -j2 install"}, commands[1:])
	assert.DirExists(t, filepath.Join(f.toolRoot, domain.BuildDirName, "binutils"))
	assert.FileExists(t, journalPath)
	assert.Contains(t, f.logs.String(), "built: binutils")
}

func TestApp_Run_ReportsStepTimings(t *testing.T) {
	f := newFixture(t, true)
	f.expectDefaultSettings()
	f.journals.EXPECT().Open(gomock.Any()).Return(nil, errors.New("read-only"))
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Command, stdout, _ io.Writer) error {
			_, err := io.WriteString(stdout, "checking for gcc... gcc\n")
			return err
		}).Times(3)

	a := app.New(f.loader, f.executor, fs.New(), f.logger, tcprogrock.New(), f.journals).
		WithToolRoot(f.toolRoot).
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{})

	err := a.Run(context.Background(), app.RunOptions{
		Config: runConfig(t, domain.RunConfig{Only: []string{"binutils"}}),
	})

	require.NoError(t, err)
	out := f.logs.String()
	for _, step := range []string{"configure", "build", "install"} {
		assert.Contains(t, out, "binutils: "+step+" took ")
	}
	assert.Contains(t, out, "(1 line of output)")
	assert.Contains(t, out, "build journal disabled: read-only")
}

func TestApp_Run_StepFailure(t *testing.T) {
	f := newFixture(t, true)
	f.expectDefaultSettings()
	f.journals.EXPECT().Open(gomock.Any()).Return(mocks.NewMockJournal(gomock.NewController(t)), nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("exit status 1"))

	err := f.app.Run(context.Background(), app.RunOptions{
		Config: runConfig(t, domain.RunConfig{}),
	})

	require.ErrorIs(t, err, domain.ErrStepFailed)
	assert.Contains(t, err.Error(), "binutils configure failed")
}

func TestApp_Run_InvalidSelection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.RunConfig
		wantErr error
	}{
		{name: "unknown only", cfg: domain.RunConfig{Only: []string{"gdb"}}, wantErr: domain.ErrUnknownProject},
		{name: "unknown skip", cfg: domain.RunConfig{Skip: []string{"binutils", "llvm"}}, wantErr: domain.ErrUnknownProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.expectDefaultSettings()

			err := f.app.Run(context.Background(), app.RunOptions{Config: runConfig(t, tt.cfg)})

			require.ErrorIs(t, err, tt.wantErr)
			assert.NoDirExists(t, filepath.Join(f.toolRoot, domain.BuildDirName))
		})
	}
}

func TestApp_Run_Settings(t *testing.T) {
	t.Run("explicit config must exist", func(t *testing.T) {
		f := newFixture(t, false)
		f.loader.EXPECT().Load("/etc/tcbuild.yaml").Return(nil, nil)

		err := f.app.Run(context.Background(), app.RunOptions{ConfigPath: "/etc/tcbuild.yaml"})

		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("settings file applies below flags", func(t *testing.T) {
		f := newFixture(t, true)
		f.loader.EXPECT().Load(filepath.Join(f.toolRoot, domain.SettingsFileName)).
			Return(&domain.Settings{Jobs: 6, Prefix: "/opt/arm"}, nil)

		err := f.app.Run(context.Background(), app.RunOptions{
			Config: runConfig(t, domain.RunConfig{DryRun: true, Only: []string{"binutils"}}),
			Prefix: "/usr/local/arm",
		})

		require.NoError(t, err)
		assert.Contains(t, f.logs.String(), "--prefix=/usr/local/arm")
		assert.Contains(t, f.logs.String(), "make -j6")
	})

	t.Run("loader failure", func(t *testing.T) {
		f := newFixture(t, false)
		f.loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrConfigParseFailed)

		err := f.app.Run(context.Background(), app.RunOptions{})

		require.ErrorIs(t, err, domain.ErrConfigParseFailed)
	})

	t.Run("non-positive jobs", func(t *testing.T) {
		f := newFixture(t, false)
		f.expectDefaultSettings()

		err := f.app.Run(context.Background(), app.RunOptions{Jobs: -2})

		require.ErrorIs(t, err, domain.ErrInvalidJobs)
	})
}

func TestApp_ListProjects(t *testing.T) {
	f := newFixture(t, false)

	var out bytes.Buffer
	require.NoError(t, f.app.ListProjects(context.Background(), app.RunOptions{}, &out))

	assert.Equal(t, "binutils\ngcc-bootstrap\nnewlib\ngcc\nnewlib-nano\n", out.String())
}

func TestApp_ListProjects_IgnoresSettings(t *testing.T) {
	f := newFixture(t, false)

	// The loader has no expectations, so reading any settings fails the test.
	var out bytes.Buffer
	err := f.app.ListProjects(context.Background(), app.RunOptions{
		ConfigPath: filepath.Join(f.toolRoot, "missing.yaml"),
		Jobs:       -1,
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out.String(), "\n"))
}
