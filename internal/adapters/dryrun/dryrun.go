// Package dryrun provides executor and filesystem adapters that log every
// state-changing operation instead of performing it.
package dryrun

import (
	"context"
	"io"
	"time"

	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
)

// Prefix starts every transcript line.
const Prefix = domain.DryRunPrefix

// Executor implements ports.Executor by logging commands.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates an Executor logging to logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

var _ ports.Executor = (*Executor)(nil)

// Run logs cmd and returns success.
func (e *Executor) Run(_ context.Context, cmd domain.Command, _, _ io.Writer) error {
	e.logger.Info(Prefix + describe(cmd))
	return nil
}

// Output logs cmd and returns empty output.
func (e *Executor) Output(_ context.Context, cmd domain.Command) ([]byte, error) {
	e.logger.Info(Prefix + describe(cmd))
	return nil, nil
}

func describe(cmd domain.Command) string {
	if cmd.Dir == "" {
		return cmd.String()
	}
	return "cd " + cmd.Dir + " && " + cmd.String()
}

// FileSystem implements ports.FileSystem, reading through base and logging writes.
type FileSystem struct {
	base   ports.FileSystem
	logger ports.Logger
}

// NewFileSystem creates a FileSystem reading from base and logging to logger.
func NewFileSystem(base ports.FileSystem, logger ports.Logger) *FileSystem {
	return &FileSystem{base: base, logger: logger}
}

var _ ports.FileSystem = (*FileSystem)(nil)

// ModTime delegates to the underlying filesystem.
func (f *FileSystem) ModTime(path string) (time.Time, bool, error) {
	return f.base.ModTime(path)
}

// MkdirAll logs the directory that would be created.
func (f *FileSystem) MkdirAll(path string) error {
	f.logger.Info(Prefix + "mkdir -p " + path)
	return nil
}

// CopyFile logs the copy that would be made.
func (f *FileSystem) CopyFile(src, dst string) error {
	f.logger.Info(Prefix + "cp " + src + " " + dst)
	return nil
}
