package repo

import "errors"

var (
	// ErrEmptyCommit is returned when a commit is attempted with nothing
	// staged. A recoverable outcome, not a repository fault.
	ErrEmptyCommit = errors.New("nothing staged")

	// ErrNotFound is returned when a commit id or branch does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when a commit record cannot be parsed. History
	// integrity must not be misrepresented, so reads fail hard on it rather
	// than skipping the record.
	ErrCorrupt = errors.New("corrupt commit record")
)
