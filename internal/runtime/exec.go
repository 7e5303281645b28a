package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/containerd/containerd/v2/pkg/cio"
	"github.com/cruciblehq/chariotd/internal/crex"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

var execSeq uint64

func nextExecID() string {
	return fmt.Sprintf("exec-%d", atomic.AddUint64(&execSeq, 1))
}

// ExecResult is the outcome of a command run inside a container. A
// non-zero ExitCode is not a Go error; Exec/ExecShell return an error only
// when the runtime itself failed to run the command at all.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Exec runs argv directly inside the container, with no shell involved.
func (c *Container) Exec(ctx context.Context, argv []string) (*ExecResult, error) {
	return c.run(ctx, argv)
}

// ExecShell runs command via `/bin/sh -c command`.
func (c *Container) ExecShell(ctx context.Context, command string) (*ExecResult, error) {
	return c.run(ctx, []string{"/bin/sh", "-c", command})
}

func (c *Container) run(ctx context.Context, argv []string) (*ExecResult, error) {
	pspec, err := c.buildProcessSpec(ctx, argv)
	if err != nil {
		return nil, crex.Wrap(ErrRuntime, err)
	}

	var stdout, stderr bytes.Buffer
	var stdoutW, stderrW io.Writer = &stdout, &stderr
	if c.silenceOut {
		stdoutW = io.Discard
	}
	if c.silenceErr {
		stderrW = io.Discard
	}

	exitCode, err := c.execProcess(ctx, pspec, nil, stdoutW, stderrW)
	if err != nil {
		return nil, err
	}

	return &ExecResult{ExitCode: exitCode, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

func (c *Container) buildProcessSpec(ctx context.Context, args []string) (*specs.Process, error) {
	ctr, err := c.client.LoadContainer(ctx, c.id)
	if err != nil {
		return nil, err
	}

	spec, err := ctr.Spec(ctx)
	if err != nil {
		return nil, err
	}

	pspec := *spec.Process
	pspec.Terminal = false
	pspec.Args = args
	if c.cwd != "" {
		pspec.Cwd = c.cwd
	}

	return &pspec, nil
}

func (c *Container) execProcess(ctx context.Context, pspec *specs.Process, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	ctr, err := c.client.LoadContainer(ctx, c.id)
	if err != nil {
		return 0, crex.Wrap(ErrRuntime, err)
	}

	task, err := ctr.Task(ctx, nil)
	if err != nil {
		return 0, crex.Wrap(ErrRuntime, err)
	}

	process, err := task.Exec(ctx, nextExecID(), pspec, cio.NewCreator(
		cio.WithStreams(stdin, stdout, stderr),
	))
	if err != nil {
		return 0, crex.Wrap(ErrRuntime, err)
	}

	statusC, err := process.Wait(ctx)
	if err != nil {
		process.Delete(ctx)
		return 0, crex.Wrap(ErrRuntime, err)
	}

	if err := process.Start(ctx); err != nil {
		process.Delete(ctx)
		return 0, crex.Wrap(ErrRuntime, err)
	}

	exitStatus := <-statusC
	process.Delete(ctx)

	code, _, err := exitStatus.Result()
	if err != nil {
		return 0, crex.Wrap(ErrRuntime, err)
	}
	return int(code), nil
}
