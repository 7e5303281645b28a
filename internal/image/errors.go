package image

import "errors"

var (
	// ErrImage wraps any failure building or extending a layer.
	ErrImage = errors.New("image: layer resolution failed")

	// ErrPackageInstall names a package manager invocation that failed
	// inside a newly cloned layer.
	ErrPackageInstall = errors.New("image: package install failed")
)
