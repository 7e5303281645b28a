package build

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/embed"
	"github.com/cruciblehq/chariotd/internal/pathutil"
	"github.com/cruciblehq/chariotd/internal/recipe"
)

// buildHostTarget runs the host/target stage executor: configure, build,
// install, each a /bin/sh -c invocation against a container whose mounts
// expose the recipe's dependencies, linked source, and per-recipe
// build/cache/install directories.
func (w *walker) buildHostTarget(ctx context.Context, r *recipe.Recipe, cacheDir, rootfs string) error {
	prefix := "/usr/local"
	if r.Namespace == recipe.Target {
		prefix = "/usr"
	}

	buildDir := filepath.Join(cacheDir, "build")
	cacheSubDir := filepath.Join(cacheDir, "cache")
	installDir := filepath.Join(cacheDir, "install")

	if err := pathutil.Clean(buildDir); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	if err := pathutil.Clean(installDir); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}
	if w.opts.CleanCache {
		if err := pathutil.Clean(cacheSubDir); err != nil {
			return crex.Wrap(ErrFileSystem, err)
		}
	} else if err := pathutil.Make(cacheSubDir, pathutil.DefaultDirMode); err != nil {
		return crex.Wrap(ErrFileSystem, err)
	}

	id := containerID(r, "build")
	ctr := w.rt.NewFromRootfs(rootfs, id)
	defer ctr.Destroy(ctx)

	sourcesDir := filepath.Join(w.opts.CacheRoot, "deps", "source")
	hostDir := filepath.Join(w.opts.CacheRoot, "deps", "host")
	targetDir := filepath.Join(w.opts.CacheRoot, "deps", "target")

	for _, m := range []struct {
		host, container string
		readOnly        bool
	}{
		{sourcesDir, "/chariot/sources", false},
		{hostDir, "/usr/local", false},
		{targetDir, "/chariot/sysroot", false},
		{buildDir, "/chariot/build", false},
		{cacheSubDir, "/chariot/cache", false},
		{installDir, "/chariot/install", false},
	} {
		if err := ctr.AddMount(m.host, m.container, m.readOnly); err != nil {
			return crex.Wrap(ErrFileSystem, err)
		}
	}

	linkedSource := r.HostTargetBody.Source
	if linkedSource != nil {
		linkedSrcDir := filepath.Join(w.opts.CacheRoot, linkedSource.Namespace.String(), linkedSource.Name, "src")
		if err := ctr.AddMount(linkedSrcDir, "/chariot/source", false); err != nil {
			return crex.Wrap(ErrFileSystem, err)
		}
	}

	if err := ctr.Start(ctx); err != nil {
		return err
	}
	ctr.SetCwd("/chariot/build")

	base := embed.Scope{
		"prefix":      prefix,
		"sysroot_dir": "/chariot/sysroot",
		"sources_dir": "/chariot/sources",
		"cache_dir":   "/chariot/cache",
		"build_dir":   "/chariot/build",
	}
	if linkedSource != nil {
		base["source_dir"] = "/chariot/source"
	}

	body := r.HostTargetBody
	if body.Configure != "" {
		if err := w.runStage(ctx, ctr, body.Configure, base); err != nil {
			return err
		}
	}

	if body.Build != "" {
		buildScope := embed.Scope{"thread_count": strconv.Itoa(w.opts.ThreadCount)}
		if err := w.runStage(ctx, ctr, body.Build, buildScope, base); err != nil {
			return err
		}
	}

	if body.Install != "" {
		installScope := embed.Scope{"install_dir": "/chariot/install"}
		if err := w.runStage(ctx, ctr, body.Install, installScope, base); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) runStage(ctx context.Context, ctr containerExecutor, block string, scopes ...embed.Scope) error {
	expanded, err := embed.Expand(block, append(scopes, w.opts.UserVars)...)
	if err != nil {
		return crex.Wrap(ErrBuild, err)
	}
	return runShell(ctx, ctr, expanded)
}
