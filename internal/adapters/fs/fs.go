// Package fs implements ports.FileSystem on the local disk.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// OS implements ports.FileSystem using the os package.
type OS struct{}

// New creates a new OS filesystem.
func New() *OS {
	return &OS{}
}

var _ ports.FileSystem = (*OS)(nil)

// ModTime returns the modification time of path and whether it exists.
func (f *OS) ModTime(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, errors.Join(domain.ErrPathStatFailed, zerr.With(zerr.Wrap(err, "cannot stat path"), "path", path))
	}
	return info.ModTime(), true, nil
}

// MkdirAll creates path and any missing parents.
func (f *OS) MkdirAll(path string) error {
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

// CopyFile copies src to dst, creating missing destination directories.
// The destination is written to a temporary file and renamed into place.
func (f *OS) CopyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // paths come from the build layout
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source"), "path", src)
	}
	defer func() { _ = in.Close() }()

	return writeAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

// WriteFile replaces path with data. Readers see either the old or the new
// content, never a partial write.
func WriteFile(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeAtomic fills a temporary file next to dst and renames it into place.
func writeAtomic(dst string, fill func(io.Writer) error) (err error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination"), "path", dst)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", dst)
	}
	if err = tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to set permissions"), "path", dst)
	}
	if err = tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close destination"), "path", dst)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to move destination into place"), "path", dst)
	}
	return nil
}
