package build

import "errors"

var (
	// ErrBuild wraps any failure processing a recipe, regardless of stage.
	ErrBuild = errors.New("build: recipe processing failed")

	// ErrFileSystem wraps a scratch/cache directory operation failure.
	ErrFileSystem = errors.New("build: filesystem operation failed")

	// ErrVerification names a source archive whose checksum did not match
	// its recipe's declared b2sum.
	ErrVerification = errors.New("build: verification failed")

	// ErrMissingPatchFile names a recipe's declared patch file that does
	// not exist under the patches directory.
	ErrMissingPatchFile = errors.New("build: missing patch file")
)
