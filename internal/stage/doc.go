// Package stage implements dependency staging: for a target recipe, a
// depth-first walk of its dependency graph that copies every transitive
// dependency's build output into the three canonical scratch mount points
// (deps/source, deps/host, deps/target) and accumulates the image
// (package-manager) dependencies the recipe's rootfs needs.
//
// The walk's root call considers all of the recipe's own dependencies;
// every recursive descent into an already-staged dependency considers
// only that dependency's runtime dependencies. This asymmetry mirrors
// install_deps in the orchestrator this package is grounded on, called
// with runtime=false at the root and runtime=true on every recursive call.
package stage
