package build

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/embed"
	"github.com/cruciblehq/chariotd/internal/image"
	"github.com/cruciblehq/chariotd/internal/pathutil"
	"github.com/cruciblehq/chariotd/internal/recipe"
	"github.com/cruciblehq/chariotd/internal/runtime"
	"github.com/cruciblehq/chariotd/internal/stage"
)

// Options configures a walker for one orchestration run.
type Options struct {
	CacheRoot     string
	PatchesDir    string
	ThreadCount   int
	HideConflicts bool
	CleanCache    bool
	UserVars      embed.Scope
}

// walker holds the state shared across every recipe processed in one run:
// the runtime and image cache the teacher's orchestrator threads through
// its own step machinery, plus the CLI-derived options that shape how each
// recipe's stages run.
type walker struct {
	rt    *runtime.Runtime
	cache *image.Cache
	opts  Options
}

// Result reports the outcome of a Run call.
type Result struct {
	// Built names every forced recipe ("namespace/name") that processed
	// successfully, in the order it was passed to Run.
	Built []string
}

// Run processes every recipe in forced, marking each invalidated so it
// rebuilds regardless of incremental-skip eligibility (spec.md's forced
// "--force" semantics: invalidation, not a write-is-mandatory guarantee).
// A failing forced recipe does not abort its siblings; their errors are
// joined and returned together.
func Run(ctx context.Context, rt *runtime.Runtime, cache *image.Cache, forced []*recipe.Recipe, opts Options) (*Result, error) {
	w := &walker{rt: rt, cache: cache, opts: opts}

	result := &Result{}
	var errs []error
	for _, r := range forced {
		r.Status.Invalidated = true
		if err := w.ProcessRecipe(ctx, r); err != nil {
			slog.Error("recipe failed", "recipe", r.Key(), "error", err)
			errs = append(errs, err)
			continue
		}
		result.Built = append(result.Built, r.Key())
	}

	return result, errors.Join(errs...)
}

// ProcessRecipe implements the seven-step orchestration procedure:
// recurse into a host/target's linked source, recurse into every resolved
// dependency, check memoization and incremental-skip eligibility, clean
// the per-run scratch directories, stage dependencies and compose a
// rootfs, dispatch to the namespace's stage executor, and record the
// outcome in r.Status.
func (w *walker) ProcessRecipe(ctx context.Context, r *recipe.Recipe) error {
	if r.HostTargetBody != nil && r.HostTargetBody.Source != nil {
		if err := w.ProcessRecipe(ctx, r.HostTargetBody.Source); err != nil {
			return err
		}
	}

	for _, dep := range r.Dependencies {
		if err := w.ProcessRecipe(ctx, dep.Resolved); err != nil {
			return err
		}
	}

	if r.Status.Built || r.Status.Failed {
		return nil
	}

	cacheDir := w.recipeDir(r)
	if !r.Status.Invalidated {
		presence, err := pathutil.Exists(cacheDir)
		if err != nil {
			return crex.Wrap(ErrFileSystem, err)
		}
		if presence == pathutil.Present {
			r.Status.Built = true
			return nil
		}
	}

	if err := w.processStages(ctx, r, cacheDir); err != nil {
		r.Status.Failed = true
		_ = pathutil.Delete(cacheDir)
		return crex.Wrap(ErrBuild, err)
	}

	r.Status.Built = true
	return nil
}

func (w *walker) processStages(ctx context.Context, r *recipe.Recipe, cacheDir string) error {
	scratchRoot := w.opts.CacheRoot
	for _, dir := range []string{"deps/source", "deps/host", "deps/target"} {
		if err := pathutil.Clean(filepath.Join(scratchRoot, dir)); err != nil {
			return crex.Wrap(ErrFileSystem, err)
		}
	}

	imageDeps, err := stage.Stage(scratchRoot, r, w.opts.HideConflicts)
	if err != nil {
		return err
	}

	rootfs, err := w.cache.Resolve(ctx, imageDeps)
	if err != nil {
		return err
	}

	switch r.Namespace {
	case recipe.Source:
		return w.buildSource(ctx, r, cacheDir, rootfs)
	default:
		return w.buildHostTarget(ctx, r, cacheDir, rootfs)
	}
}

func (w *walker) recipeDir(r *recipe.Recipe) string {
	return filepath.Join(w.opts.CacheRoot, r.Namespace.String(), r.Name)
}
