package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	daemonName = "chariotd"

	// DefaultCacheDirName is the default name of the per-project build
	// cache, created relative to the current working directory.
	DefaultCacheDirName = ".chariot-cache"

	DefaultDirMode  os.FileMode = 0755
	DefaultFileMode os.FileMode = 0644
)

// Runtime returns the directory for runtime files (sockets, PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/chariotd or /run/user/<uid>/chariotd
//	macOS:   ~/Library/Caches/chariotd/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, daemonName)
	}
	return filepath.Join(xdg.CacheHome, daemonName, "run")
}

// Socket returns the default Unix domain socket path for CLI-to-daemon
// communication.
func Socket() string {
	return filepath.Join(Runtime(), "chariotd.sock")
}

// PIDFile returns the default path to the daemon's PID file.
func PIDFile() string {
	return filepath.Join(Runtime(), "chariotd.pid")
}

// CacheRoot returns the default build cache root, rooted at the current
// working directory unless overridden by the caller (e.g. --cache).
func CacheRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultCacheDirName
	}
	return filepath.Join(wd, DefaultCacheDirName)
}
