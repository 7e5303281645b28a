// Package image maintains the cached tree of layered rootfs images keyed
// by sorted, deduplicated sets of package names. Resolve walks or extends
// the hard-linked chain under a cache's sets/ directory and returns the
// rootfs path for a given package set, installing any missing layers by
// running the base image's package manager inside a freshly cloned layer.
package image
