package domain

import "time"

// JournalEntry records the last completed build of a project.
type JournalEntry struct {
	// Project is the catalog name.
	Project string `json:"project"`
	// Fingerprint identifies the configure command line the build used.
	Fingerprint string `json:"fingerprint"`
	// CompletedAt is when the install step finished.
	CompletedAt time.Time `json:"completedAt"`
}
