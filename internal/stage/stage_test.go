package stage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cruciblehq/chariotd/internal/recipe"
)

func writeOutput(t *testing.T, cacheRoot string, ns recipe.Namespace, name, rel, file string) {
	t.Helper()
	dir := filepath.Join(cacheRoot, ns.String(), name, rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), []byte(name), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestStageRootIncludesNonRuntimeDeps(t *testing.T) {
	cacheRoot := t.TempDir()

	binutils := &recipe.Recipe{
		Namespace:      recipe.Host,
		Name:           "binutils",
		HostTargetBody: &recipe.HostTargetBody{},
	}
	writeOutput(t, cacheRoot, recipe.Host, "binutils", filepath.Join("install", "usr", "local"), "bin")

	gcc := &recipe.Recipe{
		Namespace:      recipe.Host,
		Name:           "gcc",
		HostTargetBody: &recipe.HostTargetBody{},
		Dependencies:   []recipe.Dependency{{Namespace: recipe.Host, Name: "binutils", Runtime: false, Resolved: binutils}},
		ImageDeps:      []recipe.ImageDependency{{Name: "make", Runtime: false}},
	}

	imageDeps, err := Stage(cacheRoot, gcc, false)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	// binutils is a non-runtime dependency of the root recipe, so it must
	// still be staged (the root call is unfiltered). The same holds for the
	// root's own non-runtime image dependency.
	if _, err := os.Stat(filepath.Join(cacheRoot, "deps", "host", "bin")); err != nil {
		t.Fatalf("expected binutils install tree staged: %v", err)
	}
	if len(imageDeps) != 1 || imageDeps[0] != "make" {
		t.Fatalf("got image deps %v, want [make]", imageDeps)
	}
}

func TestStageRecursiveExcludesNonRuntimeDeps(t *testing.T) {
	cacheRoot := t.TempDir()

	zlib := &recipe.Recipe{
		Namespace:      recipe.Host,
		Name:           "zlib",
		HostTargetBody: &recipe.HostTargetBody{},
	}
	writeOutput(t, cacheRoot, recipe.Host, "zlib", filepath.Join("install", "usr", "local"), "lib")

	binutils := &recipe.Recipe{
		Namespace:      recipe.Host,
		Name:           "binutils",
		HostTargetBody: &recipe.HostTargetBody{},
		Dependencies:   []recipe.Dependency{{Namespace: recipe.Host, Name: "zlib", Runtime: false, Resolved: zlib}},
	}
	writeOutput(t, cacheRoot, recipe.Host, "binutils", filepath.Join("install", "usr", "local"), "bin")

	gcc := &recipe.Recipe{
		Namespace:      recipe.Host,
		Name:           "gcc",
		HostTargetBody: &recipe.HostTargetBody{},
		Dependencies:   []recipe.Dependency{{Namespace: recipe.Host, Name: "binutils", Runtime: true, Resolved: binutils}},
	}

	if _, err := Stage(cacheRoot, gcc, false); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cacheRoot, "deps", "host", "bin")); err != nil {
		t.Fatalf("expected binutils staged: %v", err)
	}
	// zlib is a non-runtime dependency of binutils, reached only through
	// recursive descent (runtime=true), so it must be excluded.
	if _, err := os.Stat(filepath.Join(cacheRoot, "deps", "host", "lib")); err == nil {
		t.Fatal("expected zlib to be excluded from recursive staging")
	}
}

func TestStageDedupesAlreadyInstalled(t *testing.T) {
	cacheRoot := t.TempDir()

	shared := &recipe.Recipe{Namespace: recipe.Host, Name: "shared", HostTargetBody: &recipe.HostTargetBody{}}
	writeOutput(t, cacheRoot, recipe.Host, "shared", filepath.Join("install", "usr", "local"), "marker")

	a := &recipe.Recipe{
		Namespace:      recipe.Host,
		Name:           "a",
		HostTargetBody: &recipe.HostTargetBody{},
		Dependencies:   []recipe.Dependency{{Namespace: recipe.Host, Name: "shared", Runtime: true, Resolved: shared}},
	}
	writeOutput(t, cacheRoot, recipe.Host, "a", filepath.Join("install", "usr", "local"), "a-bin")

	root := &recipe.Recipe{
		Namespace:      recipe.Host,
		Name:           "root",
		HostTargetBody: &recipe.HostTargetBody{},
		Dependencies: []recipe.Dependency{
			{Namespace: recipe.Host, Name: "a", Runtime: true, Resolved: a},
			{Namespace: recipe.Host, Name: "shared", Runtime: true, Resolved: shared},
		},
	}

	if _, err := Stage(cacheRoot, root, false); err != nil {
		t.Fatalf("Stage: %v", err)
	}
}
