package ports

import "errors"

// Shared repository sentinels. Adapters translate their native errors
// into these; everything above the ports matches with errors.Is.
var (
	// ErrNotFound reports a missing record or pack file.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a lost optimistic-concurrency race or a
	// duplicate create.
	ErrConflict = errors.New("conflict")
)
