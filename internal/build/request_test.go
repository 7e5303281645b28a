package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cruciblehq/chariotd/internal/protocol"
)

const sampleConfig = `
source/hello {
	url: https://example.com/hello.tar.gz
	type: tar.gz
	b2sum: deadbeef
}

host/hello_build {
	source: hello
	configure { ./configure --prefix=@(prefix) }
	build { make -j@(thread_count) }
	install { make install DESTDIR=@(install_dir) }
}
`

func writeSampleConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.chariot")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveRequestResolvesForcedRecipes(t *testing.T) {
	path := writeSampleConfig(t)

	forced, opts, err := ResolveRequest(protocol.BuildRequest{
		ConfigPath: path,
		Forced:     []string{"host/hello_build"},
		CacheRoot:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("ResolveRequest: %v", err)
	}
	if len(forced) != 1 || forced[0].Name != "hello_build" {
		t.Fatalf("unexpected forced recipes: %+v", forced)
	}
	if opts.PatchesDir == "" {
		t.Fatal("expected a default patches dir")
	}
}

func TestResolveRequestRejectsReservedVarName(t *testing.T) {
	path := writeSampleConfig(t)

	_, _, err := ResolveRequest(protocol.BuildRequest{
		ConfigPath: path,
		Forced:     []string{"host/hello_build"},
		Vars:       map[string]string{"build_dir": "/tmp/evil"},
	})
	if err == nil {
		t.Fatal("expected an error for a reserved variable name")
	}
}

func TestResolveRequestUnknownForcedRecipe(t *testing.T) {
	path := writeSampleConfig(t)

	_, _, err := ResolveRequest(protocol.BuildRequest{
		ConfigPath: path,
		Forced:     []string{"target/nonexistent"},
	})
	if err == nil {
		t.Fatal("expected an error for an unresolved forced recipe")
	}
}

func TestResolveRequestMalformedForcedKey(t *testing.T) {
	path := writeSampleConfig(t)

	_, _, err := ResolveRequest(protocol.BuildRequest{
		ConfigPath: path,
		Forced:     []string{"not-a-key"},
	})
	if err == nil {
		t.Fatal("expected an error for a malformed forced recipe key")
	}
}
