package build

import (
	"context"
	"fmt"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/recipe"
	"github.com/cruciblehq/chariotd/internal/runtime"
)

// containerExecutor is the subset of *runtime.Container the stage
// executors need; narrowed to keep fetchArchive/fetchGit testable against
// a fake.
type containerExecutor interface {
	ExecShell(ctx context.Context, command string) (*runtime.ExecResult, error)
}

// runShell runs command in ctr and turns a non-zero exit into an error;
// every stage step in spec.md §4.I aborts its recipe on non-zero exit.
func runShell(ctx context.Context, ctr containerExecutor, command string) error {
	result, err := ctr.ExecShell(ctx, command)
	if err != nil {
		return crex.Wrap(ErrBuild, err)
	}
	if result.ExitCode != 0 {
		return crex.Wrapf(ErrBuild, "`%s` exited %d: %s", command, result.ExitCode, result.Stderr)
	}
	return nil
}

// containerID derives a stable, human-readable containerd container ID
// for one stage of one recipe's processing.
func containerID(r *recipe.Recipe, stageName string) string {
	return fmt.Sprintf("chariot-%s-%s-%s", r.Namespace.String(), r.Name, stageName)
}
