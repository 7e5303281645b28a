package pathutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cruciblehq/chariotd/internal/crex"
)

// Presence describes the result of an Exists check.
type Presence int

const (
	// Present means the path exists.
	Present Presence = iota
	// Absent means the path does not exist.
	Absent
)

// Exists reports whether path is present, distinguishing a missing path
// from an unexpected stat failure.
func Exists(path string) (Presence, error) {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return Absent, nil
		}
		return Absent, crex.Wrap(ErrFileSystem, err)
	}
	return Present, nil
}

// Make creates path and any missing parents with the given mode.
func Make(path string, mode os.FileMode) error {
	if err := os.MkdirAll(path, mode); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	return nil
}

// Delete removes path, whether a file, empty directory, or directory tree.
// A missing path is not an error.
func Delete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	return nil
}

// Clean removes path if present and recreates it as an empty directory.
func Clean(path string) error {
	if err := Delete(path); err != nil {
		return err
	}
	return Make(path, DefaultDirMode)
}

// DefaultDirMode is the mode used for directories created on behalf of a
// recipe build (scratch, cache, and install directories).
const DefaultDirMode os.FileMode = 0755

// DefaultFileMode is the mode used for files written on behalf of a recipe
// build (such as a source recipe's b2sums.txt).
const DefaultFileMode os.FileMode = 0644

// WriteFile writes data to path, creating or truncating it.
func WriteFile(path string, data []byte, mode os.FileMode) error {
	if err := os.WriteFile(path, data, mode); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	return nil
}

// Copy recursively copies src into dest. If warnConflicts is true, an entry
// already present at the destination is left untouched and logged instead
// of being overwritten; otherwise files are replaced. Directories are
// merged, not replaced wholesale.
func Copy(dest, src string, warnConflicts bool) error {
	info, err := os.Lstat(src)
	if err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	return copyEntry(dest, src, info, warnConflicts)
}

func copyEntry(dest, src string, info os.FileInfo, warnConflicts bool) error {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(dest, src)
	case info.IsDir():
		return copyDir(dest, src, warnConflicts)
	default:
		return copyFile(dest, src, info, warnConflicts)
	}
}

func copyDir(dest, src string, warnConflicts bool) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	if err := Make(dest, DefaultDirMode); err != nil {
		return err
	}
	for _, entry := range entries {
		childInfo, err := entry.Info()
		if err != nil {
			return crex.Wrap(ErrFileSystem, err)
		}
		if err := copyEntry(filepath.Join(dest, entry.Name()), filepath.Join(src, entry.Name()), childInfo, warnConflicts); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(dest, src string, info os.FileInfo, warnConflicts bool) error {
	if presence, err := Exists(dest); err != nil {
		return err
	} else if presence == Present {
		if warnConflicts {
			slog.Warn("skipping existing file", "path", dest)
			return nil
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	return nil
}

func copySymlink(dest, src string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	_ = os.Remove(dest)
	if err := os.Symlink(target, dest); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	return nil
}

// LinkRecursive clones src into dest by hard-linking every regular file and
// recreating directories and symlinks. It is used to build image layers
// without copying package-manager payloads byte for byte. A file that
// cannot be hard-linked (e.g. a cross-device dest) is warned about and
// copied byte for byte instead; a failure of that copy, or a directory that
// cannot be created, is fatal.
func LinkRecursive(dest, src string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	return linkEntry(dest, src, info)
}

func linkEntry(dest, src string, info os.FileInfo) error {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(dest, src)
	case info.IsDir():
		return linkDir(dest, src)
	default:
		return linkFile(dest, src)
	}
}

func linkDir(dest, src string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	if err := Make(dest, DefaultDirMode); err != nil {
		return err
	}
	for _, entry := range entries {
		childInfo, err := entry.Info()
		if err != nil {
			return crex.Wrap(ErrFileSystem, err)
		}
		if err := linkEntry(filepath.Join(dest, entry.Name()), filepath.Join(src, entry.Name()), childInfo); err != nil {
			return err
		}
	}
	return nil
}

func linkFile(dest, src string) error {
	if err := os.Link(src, dest); err != nil {
		slog.Warn("hard link failed, falling back to copy", "path", dest, "error", err)
		info, statErr := os.Lstat(src)
		if statErr != nil {
			return crex.Wrap(ErrFileSystem, statErr)
		}
		return copyFile(dest, src, info, false)
	}
	return nil
}
