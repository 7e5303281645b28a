package runtime

import "errors"

var (
	ErrRuntime    = errors.New("runtime error")
	ErrMountOrder = errors.New("mount applied after container start")
)
