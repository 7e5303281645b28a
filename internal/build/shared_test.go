package build

import (
	"context"
	"errors"
	"testing"

	"github.com/cruciblehq/chariotd/internal/recipe"
	"github.com/cruciblehq/chariotd/internal/runtime"
)

type fakeExecutor struct {
	commands []string
	results  map[string]*runtime.ExecResult
	err      error
}

func (f *fakeExecutor) ExecShell(_ context.Context, command string) (*runtime.ExecResult, error) {
	f.commands = append(f.commands, command)
	if f.err != nil {
		return nil, f.err
	}
	if result, ok := f.results[command]; ok {
		return result, nil
	}
	return &runtime.ExecResult{ExitCode: 0}, nil
}

func TestRunShellNonZeroExitIsError(t *testing.T) {
	f := &fakeExecutor{results: map[string]*runtime.ExecResult{
		"false": {ExitCode: 1, Stderr: "boom"},
	}}

	err := runShell(context.Background(), f, "false")
	if err == nil {
		t.Fatal("expected error on non-zero exit")
	}
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("expected ErrBuild, got %v", err)
	}
}

func TestRunShellExecError(t *testing.T) {
	f := &fakeExecutor{err: errors.New("connection lost")}

	if err := runShell(context.Background(), f, "echo hi"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunShellSuccess(t *testing.T) {
	f := &fakeExecutor{}
	if err := runShell(context.Background(), f, "true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.commands) != 1 || f.commands[0] != "true" {
		t.Fatalf("unexpected commands recorded: %v", f.commands)
	}
}

func TestContainerID(t *testing.T) {
	r := &recipe.Recipe{Namespace: recipe.Host, Name: "gcc"}
	got := containerID(r, "build")
	want := "chariot-host-gcc-build"
	if got != want {
		t.Fatalf("containerID = %q, want %q", got, want)
	}
}
