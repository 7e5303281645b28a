package parser

import (
	"testing"

	"github.com/cruciblehq/chariotd/internal/recipe"
)

const sampleConfig = `
source/gcc_src {
    url: https://example.invalid/gcc.tar.gz
    type: tar.gz
    b2sum: deadbeef
    patch: gcc.patch
}

host/binutils {
    configure {
        ./configure --prefix=@(prefix)
    }
    build {
        make -j @(thread_count)
    }
    install {
        make install
    }
}

// a comment is ignored
host/gcc {
    source: gcc_src
    dependencies [
        *host/binutils
        image/make
    ]
    configure {
        ./configure
    }
}
`

func TestParseString(t *testing.T) {
	set, err := ParseString("sample.chariot", ".", []byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("got %d recipes, want 3", set.Len())
	}

	gcc, ok := set.Lookup(recipe.Host, "gcc")
	if !ok {
		t.Fatal("expected host/gcc to be present")
	}
	if gcc.HostTargetBody.SourceName != "gcc_src" {
		t.Fatalf("got source name %q, want gcc_src", gcc.HostTargetBody.SourceName)
	}
	if len(gcc.Dependencies) != 1 || gcc.Dependencies[0].Name != "binutils" || !gcc.Dependencies[0].Runtime {
		t.Fatalf("unexpected dependencies: %+v", gcc.Dependencies)
	}
	if len(gcc.ImageDeps) != 1 || gcc.ImageDeps[0].Name != "make" {
		t.Fatalf("unexpected image deps: %+v", gcc.ImageDeps)
	}

	if err := recipe.Resolve(set); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if gcc.HostTargetBody.Source == nil || gcc.HostTargetBody.Source.Name != "gcc_src" {
		t.Fatal("expected gcc's source reference to resolve to gcc_src")
	}
}

func TestParseMissingURL(t *testing.T) {
	_, err := ParseString("bad.chariot", ".", []byte("source/x {\n type: tar.gz\n}\n"))
	if err == nil {
		t.Fatal("expected an error for a source recipe missing url")
	}
}

func TestRoundTrip(t *testing.T) {
	set, err := ParseString("sample.chariot", ".", []byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	serialized := Serialize(set)
	reparsed, err := ParseString("sample.chariot", ".", []byte(serialized))
	if err != nil {
		t.Fatalf("re-parsing serialized output: %v\n%s", err, serialized)
	}

	if reparsed.Len() != set.Len() {
		t.Fatalf("got %d recipes after round-trip, want %d", reparsed.Len(), set.Len())
	}
	for _, r := range set.All() {
		got, ok := reparsed.Lookup(r.Namespace, r.Name)
		if !ok {
			t.Fatalf("recipe `%s` missing after round-trip", r.Key())
		}
		if got.Namespace != r.Namespace || got.Name != r.Name {
			t.Fatalf("recipe `%s` identity mismatch after round-trip", r.Key())
		}
	}
}
