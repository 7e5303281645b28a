package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cruciblehq/chariotd/internal/recipe"
)

func TestFetchArchiveTarXzUsesZstd(t *testing.T) {
	cacheDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(cacheDir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	body := &recipe.SourceBody{URL: "https://example.com/a.tar.xz", Type: recipe.TarXz, B2Sum: "deadbeef"}
	f := &fakeExecutor{}

	w := &walker{}
	if err := w.fetchArchive(context.Background(), body, cacheDir, f); err != nil {
		t.Fatalf("fetchArchive: %v", err)
	}

	var extract string
	for _, c := range f.commands {
		if strings.HasPrefix(c, "tar ") {
			extract = c
		}
	}
	if !strings.Contains(extract, "--zstd") {
		t.Fatalf("expected --zstd extraction for tar.xz, got %q", extract)
	}

	data, err := os.ReadFile(filepath.Join(cacheDir, "b2sums.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "deadbeef /chariot/source/archive") {
		t.Fatalf("unexpected b2sums content: %q", data)
	}
}

func TestFetchArchiveTarGzUsesGzip(t *testing.T) {
	cacheDir := t.TempDir()
	body := &recipe.SourceBody{URL: "https://example.com/a.tar.gz", Type: recipe.TarGz, B2Sum: "cafef00d"}
	f := &fakeExecutor{}

	w := &walker{}
	if err := w.fetchArchive(context.Background(), body, cacheDir, f); err != nil {
		t.Fatalf("fetchArchive: %v", err)
	}

	var extract string
	for _, c := range f.commands {
		if strings.HasPrefix(c, "tar ") {
			extract = c
		}
	}
	if !strings.Contains(extract, "--gzip") {
		t.Fatalf("expected --gzip extraction for tar.gz, got %q", extract)
	}
}

func TestFetchGitSequence(t *testing.T) {
	body := &recipe.SourceBody{URL: "https://example.com/repo.git", Type: recipe.Git, Commit: "abc123"}
	f := &fakeExecutor{}

	w := &walker{}
	if err := w.fetchGit(context.Background(), body, f); err != nil {
		t.Fatalf("fetchGit: %v", err)
	}

	if len(f.commands) != 3 {
		t.Fatalf("expected 3 commands, got %d: %v", len(f.commands), f.commands)
	}
	if !strings.Contains(f.commands[0], "git clone --depth=1") {
		t.Fatalf("unexpected first command: %q", f.commands[0])
	}
	if !strings.Contains(f.commands[1], "git fetch --depth=1 origin 'abc123'") {
		t.Fatalf("unexpected second command: %q", f.commands[1])
	}
	if !strings.Contains(f.commands[2], "git checkout 'abc123'") {
		t.Fatalf("unexpected third command: %q", f.commands[2])
	}
}
