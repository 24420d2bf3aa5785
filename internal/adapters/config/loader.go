// Package config loads the optional tcbuild.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for YAML settings files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load reads the settings file at path. Relative paths inside the file are
// resolved against the file's directory. Returns nil, nil if the file does not exist.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(zerr.Wrap(err, "cannot read settings"), "path", path))
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(zerr.Wrap(err, "invalid settings file"), "path", path))
	}

	if file.Jobs < 0 {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidJobs, "invalid settings file"), "path", path), "jobs", file.Jobs)
	}

	base := filepath.Dir(path)
	return &domain.Settings{
		Target:     file.Target,
		Prefix:     resolvePath(base, file.Prefix),
		SourceRoot: resolvePath(base, file.SourceRoot),
		Jobs:       file.Jobs,
		Compiler:   file.Compiler,
	}, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
