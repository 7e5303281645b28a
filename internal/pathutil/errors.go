package pathutil

import "errors"

var (
	// ErrFileSystem wraps any unexpected filesystem operation failure.
	ErrFileSystem = errors.New("pathutil: filesystem operation failed")

	// ErrConflict names a destination entry that a copy would overwrite.
	// Copy does not return it: with warnConflicts true it logs a warning and
	// leaves such an entry untouched, otherwise it replaces the entry.
	ErrConflict = errors.New("pathutil: destination conflict")
)
