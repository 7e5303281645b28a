package image

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/pathutil"
	"github.com/cruciblehq/chariotd/internal/runtime"
)

// bootstrapURL is the Arch Linux bootstrap tarball used to seed the base
// image, matching the original orchestrator's pinned snapshot.
const bootstrapURL = "https://archive.archlinux.org/iso/2024.09.01/archlinux-bootstrap-x86_64.tar.zst"

// Cache maintains the layered rootfs tree under root/sets: a base image at
// sets/rootfs and a hard-linked chain sets/<p1>/<p2>/.../rootfs for every
// package set resolved so far. Two Resolve calls with permuted-but-equal
// package sets walk to the same leaf, since the set is sorted and
// deduplicated before use as a path.
type Cache struct {
	root string
	rt   *runtime.Runtime
}

// NewCache creates a cache rooted at root, using rt to run the package
// manager inside newly cloned layers.
func NewCache(root string, rt *runtime.Runtime) *Cache {
	return &Cache{root: root, rt: rt}
}

func (c *Cache) setsRoot() string { return filepath.Join(c.root, "sets") }

func (c *Cache) baseRootfs() string { return filepath.Join(c.setsRoot(), "rootfs") }

// EnsureBase downloads and extracts the base image if sets/rootfs does not
// already exist. It is all-or-nothing: a failure leaves no partial base
// image.
func (c *Cache) EnsureBase(ctx context.Context) error {
	presence, err := pathutil.Exists(c.baseRootfs())
	if err != nil {
		return crex.Wrap(ErrImage, err)
	}
	if presence == pathutil.Present {
		return nil
	}

	if err := pathutil.Make(c.baseRootfs(), pathutil.DefaultDirMode); err != nil {
		return crex.Wrap(ErrImage, err)
	}

	container, err := c.rt.StartFromRootfs(ctx, c.baseRootfs(), "chariot-bootstrap")
	if err != nil {
		_ = pathutil.Delete(c.setsRoot())
		return crex.Wrap(ErrImage, err)
	}
	defer container.Destroy(ctx)

	cmd := fmt.Sprintf("wget -qO- %s | tar --strip-components 1 -x --zstd -C /", bootstrapURL)
	result, err := container.ExecShell(ctx, cmd)
	if err != nil || result.ExitCode != 0 {
		_ = pathutil.Delete(c.setsRoot())
		if err != nil {
			return crex.Wrap(ErrImage, err)
		}
		return crex.Wrapf(ErrImage, "bootstrap extraction failed with exit code %d", result.ExitCode)
	}

	result, err = container.ExecShell(ctx, "pacman-key --init && pacman-key --populate archlinux && pacman --noconfirm -Syu")
	if err != nil || result.ExitCode != 0 {
		_ = pathutil.Delete(c.setsRoot())
		if err != nil {
			return crex.Wrap(ErrImage, err)
		}
		return crex.Wrapf(ErrImage, "base image setup failed with exit code %d", result.ExitCode)
	}

	return nil
}

// WipeBase deletes the base image and every layer built from it, forcing
// the next EnsureBase/Resolve call to rebuild from scratch.
func (c *Cache) WipeBase() error {
	return pathutil.Delete(c.setsRoot())
}

// Resolve sorts and deduplicates pkgs, walks the layer chain rooted at the
// base image, cloning and installing any missing layer, and returns the
// rootfs path for the resulting leaf.
func (c *Cache) Resolve(ctx context.Context, pkgs []string) (string, error) {
	if err := c.EnsureBase(ctx); err != nil {
		return "", err
	}

	sorted := slices.Clone(pkgs)
	sort.Strings(sorted)
	sorted = slices.Compact(sorted)

	finalSetPath := c.setsRoot()
	for _, pkg := range sorted {
		setPath := filepath.Join(finalSetPath, pkg)

		presence, err := pathutil.Exists(setPath)
		if err != nil {
			return "", crex.Wrap(ErrImage, err)
		}
		if presence == pathutil.Absent {
			if err := c.installLayer(ctx, finalSetPath, setPath, pkg); err != nil {
				return "", err
			}
		}

		finalSetPath = setPath
	}

	return filepath.Join(finalSetPath, "rootfs"), nil
}

func (c *Cache) installLayer(ctx context.Context, parentSetPath, setPath, pkg string) error {
	parentRoot := filepath.Join(parentSetPath, "rootfs")
	setRoot := filepath.Join(setPath, "rootfs")

	if err := pathutil.LinkRecursive(setRoot, parentRoot); err != nil {
		_ = pathutil.Delete(setPath)
		return crex.Wrap(ErrImage, err)
	}

	container, err := c.rt.StartFromRootfs(ctx, setRoot, "chariot-layer-"+pkg)
	if err != nil {
		_ = pathutil.Delete(setPath)
		return crex.Wrap(ErrImage, err)
	}
	defer container.Destroy(ctx)

	container.SetSilence(true, true)
	result, err := container.Exec(ctx, []string{"/usr/bin/pacman", "--noconfirm", "-S", pkg})
	if err != nil {
		_ = pathutil.Delete(setPath)
		return crex.Wrap(ErrImage, err)
	}
	if result.ExitCode != 0 {
		_ = pathutil.Delete(setPath)
		return crex.Wrapf(ErrPackageInstall, "`%s`: %s", pkg, result.Stderr)
	}

	return nil
}
