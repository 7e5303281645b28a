package stage

import "errors"

// ErrStage wraps a failure copying a dependency's build output into a
// scratch mount point.
var ErrStage = errors.New("stage: dependency staging failed")
