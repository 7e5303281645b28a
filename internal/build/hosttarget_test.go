package build

import (
	"context"
	"testing"

	"github.com/cruciblehq/chariotd/internal/embed"
)

func TestRunStageExpandsBuiltinScopes(t *testing.T) {
	f := &fakeExecutor{}
	w := &walker{opts: Options{UserVars: embed.Scope{"extra": "value"}}}

	base := embed.Scope{"prefix": "/usr/local"}
	err := w.runStage(context.Background(), f, "./configure --prefix=@(prefix) --with-extra=@(extra)", base)
	if err != nil {
		t.Fatalf("runStage: %v", err)
	}
	if len(f.commands) != 1 {
		t.Fatalf("expected one command, got %v", f.commands)
	}
	want := "./configure --prefix=/usr/local --with-extra=value"
	if f.commands[0] != want {
		t.Fatalf("got %q, want %q", f.commands[0], want)
	}
}

func TestRunStageUnknownVariableFails(t *testing.T) {
	f := &fakeExecutor{}
	w := &walker{}

	if err := w.runStage(context.Background(), f, "@(missing)", embed.Scope{}); err == nil {
		t.Fatal("expected error for unresolved required variable")
	}
}
