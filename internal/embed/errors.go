package embed

import "errors"

// ErrUnknownVariable is returned when a required `@(name)` reference has no
// definition in any supplied scope. `@(name?)` references never trigger it.
var ErrUnknownVariable = errors.New("embed: unknown variable")

// ReservedNames are variable names the orchestrator assigns stage-local
// meaning to (the source/build/cache/install directory mount points, the
// configure/build prefix and sysroot, and the thread count); a
// user-supplied `--var` may not redefine them.
var ReservedNames = []string{
	"sources_dir",
	"build_dir",
	"cache_dir",
	"install_dir",
	"source_dir",
	"prefix",
	"sysroot_dir",
	"thread_count",
}

// IsReserved reports whether name matches a reserved variable name,
// case-insensitively.
func IsReserved(name string) bool {
	for _, r := range ReservedNames {
		if equalFold(name, r) {
			return true
		}
	}
	return false
}
