// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/tcbuild/internal/core/domain"
)

// Executor runs external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes cmd to completion, streaming its output to stdout and stderr.
	// A non-zero exit status is returned as an error carrying the exit code.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error

	// Output executes cmd and returns its captured standard output.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)
}
