package stage

import (
	"path/filepath"
	"sort"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/pathutil"
	"github.com/cruciblehq/chariotd/internal/recipe"
)

// Stage walks r's dependency graph and copies every transitive
// dependency's output into cacheRoot/deps/{source,host,target}. It
// returns the recipe's accumulated image dependency names, sorted in
// ASCII byte order and deduplicated, ready for image.Cache.Resolve.
//
// hideConflicts, when true, suppresses the copy-over-existing warning a
// dependency copy would otherwise log (the CLI's --hide-conflicts flag).
func Stage(cacheRoot string, r *recipe.Recipe, hideConflicts bool) ([]string, error) {
	installed := make(map[string]bool)
	imageSeen := make(map[string]bool)
	var imageDeps []string

	if err := walk(cacheRoot, r, true, installed, imageSeen, &imageDeps, hideConflicts); err != nil {
		return nil, err
	}

	sort.Strings(imageDeps)
	return imageDeps, nil
}

func walk(cacheRoot string, r *recipe.Recipe, root bool, installed, imageSeen map[string]bool, imageDeps *[]string, hideConflicts bool) error {
	for _, dep := range r.Dependencies {
		if !root && !dep.Runtime {
			continue
		}

		target := dep.Resolved
		if installed[target.Key()] {
			continue
		}

		if err := stageOutput(cacheRoot, target, hideConflicts); err != nil {
			return err
		}
		installed[target.Key()] = true

		if err := walk(cacheRoot, target, false, installed, imageSeen, imageDeps, hideConflicts); err != nil {
			return err
		}
	}

	for _, dep := range r.ImageDeps {
		if !root && !dep.Runtime {
			continue
		}
		if imageSeen[dep.Name] {
			continue
		}
		imageSeen[dep.Name] = true
		*imageDeps = append(*imageDeps, dep.Name)
	}

	return nil
}

func stageOutput(cacheRoot string, dep *recipe.Recipe, hideConflicts bool) error {
	depDir := filepath.Join(cacheRoot, dep.Namespace.String(), dep.Name)
	warnConflicts := !hideConflicts

	switch dep.Namespace {
	case recipe.Source:
		dest := filepath.Join(cacheRoot, "deps", "source", dep.Name)
		if err := pathutil.Make(dest, pathutil.DefaultDirMode); err != nil {
			return crex.Wrap(ErrStage, err)
		}
		if err := pathutil.Copy(dest, filepath.Join(depDir, "src"), warnConflicts); err != nil {
			return crex.Wrap(ErrStage, err)
		}
	case recipe.Host:
		dest := filepath.Join(cacheRoot, "deps", "host")
		if err := pathutil.Copy(dest, filepath.Join(depDir, "install", "usr", "local"), warnConflicts); err != nil {
			return crex.Wrap(ErrStage, err)
		}
	case recipe.Target:
		dest := filepath.Join(cacheRoot, "deps", "target")
		if err := pathutil.Copy(dest, filepath.Join(depDir, "install"), warnConflicts); err != nil {
			return crex.Wrap(ErrStage, err)
		}
	}
	return nil
}
