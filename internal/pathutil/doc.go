// Package pathutil provides the filesystem primitives the build orchestrator
// uses to stage recipe inputs and outputs: existence checks, recursive
// hard-link cloning for content-addressed image layers, and recursive
// delete/copy helpers.
package pathutil
