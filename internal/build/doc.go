// Package build implements the recipe orchestrator: given a resolved
// recipe, it recursively processes its source reference and dependencies,
// stages them into per-run scratch directories, composes the rootfs the
// recipe builds against, and dispatches to the namespace-specific stage
// executor (source fetch/verify/extract, or host/target
// configure/build/install).
//
// Processing a recipe is idempotent and memoized on its Status; an
// already-built or already-failed recipe is skipped on a second visit
// within the same run, and a recipe whose cache directory already exists
// and is not invalidated is treated as an incremental no-op.
package build
