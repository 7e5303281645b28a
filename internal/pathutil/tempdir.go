package pathutil

import (
	"os"

	"github.com/cruciblehq/chariotd/internal/crex"
)

// TempDir owns a temporary directory and removes it on Close. It stands in
// for a scoped-cleanup attribute: callers defer Close immediately after a
// successful NewTempDir.
type TempDir struct {
	path string
}

// NewTempDir creates a temporary directory under dir (os.TempDir if empty)
// named with the given prefix.
func NewTempDir(dir, prefix string) (*TempDir, error) {
	path, err := os.MkdirTemp(dir, prefix)
	if err != nil {
		return nil, crex.Wrap(ErrFileSystem, err)
	}
	return &TempDir{path: path}, nil
}

// Path returns the directory's path.
func (t *TempDir) Path() string { return t.path }

// Close removes the directory and everything in it.
func (t *TempDir) Close() error {
	return Delete(t.path)
}
