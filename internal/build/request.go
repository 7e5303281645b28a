package build

import (
	"path/filepath"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/embed"
	"github.com/cruciblehq/chariotd/internal/paths"
	"github.com/cruciblehq/chariotd/internal/protocol"
	"github.com/cruciblehq/chariotd/internal/recipe"
	"github.com/cruciblehq/chariotd/internal/recipe/parser"
)

// ResolveRequest parses req's recipe set, resolves forward references, and
// translates the request into the forced recipe list and Options a Run
// call needs. Both the daemon (internal/server) and the CLI's --local mode
// share this so a build behaves identically whether or not a daemon is in
// the loop.
func ResolveRequest(req protocol.BuildRequest) ([]*recipe.Recipe, Options, error) {
	set, err := parser.Parse(req.ConfigPath)
	if err != nil {
		return nil, Options{}, err
	}
	if err := recipe.Resolve(set); err != nil {
		return nil, Options{}, err
	}

	userVars := embed.Scope{}
	for k, v := range req.Vars {
		if embed.IsReserved(k) {
			return nil, Options{}, crex.Wrapf(embed.ErrUnknownVariable, "`%s` is a reserved variable name", k)
		}
		userVars[k] = v
	}

	forced := make([]*recipe.Recipe, 0, len(req.Forced))
	for _, key := range req.Forced {
		ns, name, err := recipe.ParseKey(key)
		if err != nil {
			return nil, Options{}, err
		}
		r, ok := set.Lookup(ns, name)
		if !ok {
			return nil, Options{}, crex.Wrapf(recipe.ErrUnresolved, "forced recipe `%s` not found", key)
		}
		forced = append(forced, r)
	}

	cacheRoot := req.CacheRoot
	if cacheRoot == "" {
		cacheRoot = paths.CacheRoot()
	}
	patchesDir := req.PatchesDir
	if patchesDir == "" {
		patchesDir = filepath.Join(cacheRoot, "patches")
	}

	opts := Options{
		CacheRoot:     cacheRoot,
		PatchesDir:    patchesDir,
		ThreadCount:   req.ThreadCount,
		HideConflicts: req.HideConflicts,
		CleanCache:    req.CleanCache,
		UserVars:      userVars,
	}

	return forced, opts, nil
}
