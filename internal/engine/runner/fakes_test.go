package runner_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"go.trai.ch/tcbuild/internal/core/domain"
)

var testLayout = domain.Layout{
	ToolRoot:   "/opt/tc",
	SourceRoot: "/opt/tc/src",
	BuildRoot:  "/opt/tc/build",
	Prefix:     "/opt/tc/install",
	Target:     "arm-none-eabi",
	Jobs:       4,
	Compiler:   "arm-none-eabi-gcc",
}

var (
	binutils = domain.Project{
		Name:          "binutils",
		ConfigureArgs: []string{"--disable-nls"},
	}
	newlibNano = domain.Project{
		Name:          "newlib-nano",
		SourceSubdir:  "newlib",
		ConfigureArgs: []string{"CFLAGS_FOR_TARGET=-Os -g"},
		Install:       domain.InstallNano,
	}
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Info(msg string) { l.add("INFO " + msg) }
func (l *recordingLogger) Warn(msg string) { l.add("WARN " + msg) }
func (l *recordingLogger) Error(err error) { l.add("ERROR " + err.Error()) }

func (l *recordingLogger) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func (l *recordingLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n") + "\n"
}

func (l *recordingLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type fakeExecutor struct {
	commands  []domain.Command
	failures  map[string]error
	echo      string
	output    []byte
	outputErr error
}

func (e *fakeExecutor) Run(_ context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	e.commands = append(e.commands, cmd)
	if e.echo != "" {
		_, _ = io.WriteString(stdout, e.echo)
		_, _ = io.WriteString(stderr, e.echo)
	}
	return e.failures[cmd.String()]
}

func (e *fakeExecutor) Output(_ context.Context, cmd domain.Command) ([]byte, error) {
	e.commands = append(e.commands, cmd)
	return e.output, e.outputErr
}

func (e *fakeExecutor) commandLines() []string {
	out := make([]string, len(e.commands))
	for i, c := range e.commands {
		out[i] = c.String()
	}
	return out
}

type copyOp struct {
	src string
	dst string
}

type fakeFS struct {
	times    map[string]time.Time
	dirs     []string
	copies   []copyOp
	copyErr  error
	mkdirErr error
}

func newFakeFS() *fakeFS {
	return &fakeFS{times: make(map[string]time.Time)}
}

func (f *fakeFS) ModTime(path string) (time.Time, bool, error) {
	t, ok := f.times[path]
	return t, ok, nil
}

func (f *fakeFS) MkdirAll(path string) error {
	if f.mkdirErr != nil {
		return f.mkdirErr
	}
	f.dirs = append(f.dirs, path)
	return nil
}

func (f *fakeFS) CopyFile(src, dst string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copies = append(f.copies, copyOp{src: src, dst: dst})
	return nil
}

// withSources marks the configure scripts of projects as present.
func (f *fakeFS) withSources(at time.Time, projects ...domain.Project) *fakeFS {
	for _, p := range projects {
		f.times[testLayout.ConfigureScript(p)] = at
	}
	return f
}

// withConfigured marks the build directories of projects as configured.
func (f *fakeFS) withConfigured(at time.Time, projects ...domain.Project) *fakeFS {
	for _, p := range projects {
		f.times[testLayout.ConfigArtifact(p)] = at
	}
	return f
}
