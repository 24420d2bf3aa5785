package ports

import "go.trai.ch/tcbuild/internal/core/domain"

// Journal stores the last completed build of every project.
//
//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks
type Journal interface {
	// Get retrieves the entry for a project.
	// Returns nil, nil if not found.
	Get(project string) (*domain.JournalEntry, error)

	// Put stores the entry.
	Put(entry domain.JournalEntry) error

	// Fingerprint returns a stable identifier of a command line.
	Fingerprint(cmd domain.Command) string
}

// JournalOpener opens the journal stored at a path.
type JournalOpener interface {
	Open(path string) (Journal, error)
}
