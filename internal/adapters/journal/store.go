// Package journal persists the last completed build of every project.
package journal

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tcbuild/internal/adapters/fs"
	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.Journal using a flat JSON file.
type Store struct {
	path    string
	mu      sync.RWMutex
	entries map[string]domain.JournalEntry
}

var _ ports.Journal = (*Store)(nil)

// NewStore opens the journal backed by the file at the given path.
// A missing file yields an empty journal.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		entries: make(map[string]domain.JournalEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return readFailed(err, s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return readFailed(err, s.path)
	}

	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return errors.Join(domain.ErrJournalWriteFailed, zerr.Wrap(err, "cannot encode journal"))
	}

	if err := fs.WriteFile(s.path, data); err != nil {
		return errors.Join(domain.ErrJournalWriteFailed, err)
	}

	return nil
}

func readFailed(err error, path string) error {
	return errors.Join(domain.ErrJournalReadFailed, zerr.With(zerr.Wrap(err, "cannot read journal"), "path", path))
}

// Get retrieves the entry for a project. Returns nil, nil if not found.
func (s *Store) Get(project string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[project]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the entry and writes the journal to disk.
func (s *Store) Put(entry domain.JournalEntry) error {
	s.mu.Lock()
	s.entries[entry.Project] = entry
	s.mu.Unlock()

	return s.save()
}

// Fingerprint hashes the program and arguments of cmd.
func (s *Store) Fingerprint(cmd domain.Command) string {
	return Fingerprint(cmd)
}

// Fingerprint hashes the program and arguments of cmd with xxhash.
// The working directory and environment do not contribute.
func Fingerprint(cmd domain.Command) string {
	d := xxhash.New()
	for _, arg := range cmd.Argv() {
		_, _ = d.WriteString(arg)
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Opener implements ports.JournalOpener.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the journal stored at path.
func (o *Opener) Open(path string) (ports.Journal, error) {
	return NewStore(path)
}
