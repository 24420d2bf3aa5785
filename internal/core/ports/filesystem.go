package ports

import "time"

// FileSystem is the subset of filesystem access the build steps need.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// ModTime returns the modification time of path and whether it exists.
	ModTime(path string) (time.Time, bool, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error

	// CopyFile copies src to dst, creating missing destination directories.
	CopyFile(src, dst string) error
}
