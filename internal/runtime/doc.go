// Package runtime adapts containerd to the orchestrator's needs: launching
// a blocking command inside a given rootfs directory with an ordered list
// of bind mounts, a working directory, and verbosity flags, and returning
// an exit status the caller interprets (a non-zero exit is data, not a Go
// error).
//
// Unlike a typical containerd consumer, a Container here is not backed by
// an imported OCI image and snapshot: recipe rootfs directories are
// produced directly on disk by the image package's layer chain, so a
// container's root filesystem is that directory itself, wired in via
// oci.WithRootFSPath. No snapshotter is involved; writes a build makes
// inside the container land directly in the layer directory on disk,
// which is how the layer is both "cached" and "used" by the next build.
package runtime
