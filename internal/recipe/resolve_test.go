package recipe

import (
	"errors"
	"testing"
)

func TestResolveDependencies(t *testing.T) {
	set := NewSet()
	binutils := &Recipe{Namespace: Host, Name: "binutils", HostTargetBody: &HostTargetBody{}}
	gcc := &Recipe{
		Namespace:      Host,
		Name:           "gcc",
		HostTargetBody: &HostTargetBody{SourceName: "gcc_src"},
		Dependencies:   []Dependency{{Namespace: Host, Name: "binutils"}},
	}
	gccSrc := &Recipe{Namespace: Source, Name: "gcc_src", SourceBody: &SourceBody{URL: "https://example.invalid", Type: TarGz, B2Sum: "x"}}

	for _, r := range []*Recipe{binutils, gcc, gccSrc} {
		if err := set.Add(r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if err := Resolve(set); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if gcc.Dependencies[0].Resolved != binutils {
		t.Fatal("expected gcc's binutils dependency resolved to the binutils recipe")
	}
	if gcc.HostTargetBody.Source != gccSrc {
		t.Fatal("expected gcc's source reference resolved to gcc_src")
	}
}

func TestResolveMissingDependency(t *testing.T) {
	set := NewSet()
	r := &Recipe{
		Namespace:      Host,
		Name:           "gcc",
		HostTargetBody: &HostTargetBody{},
		Dependencies:   []Dependency{{Namespace: Host, Name: "missing"}},
	}
	if err := set.Add(r); err != nil {
		t.Fatal(err)
	}

	err := Resolve(set)
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestValidateSourceTarRequiresB2Sum(t *testing.T) {
	r := &Recipe{
		Namespace:  Source,
		Name:       "hello",
		SourceBody: &SourceBody{URL: "https://example.invalid", Type: TarGz},
	}
	if err := Validate(r); !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
}

func TestValidateSourceGitForbidsB2Sum(t *testing.T) {
	r := &Recipe{
		Namespace: Source,
		Name:      "hello",
		SourceBody: &SourceBody{
			URL:    "https://example.invalid",
			Type:   Git,
			Commit: "deadbeef",
			B2Sum:  "should-not-be-here",
		},
	}
	if err := Validate(r); !errors.Is(err, ErrForbiddenFieldCombination) {
		t.Fatalf("expected ErrForbiddenFieldCombination, got %v", err)
	}
}

func TestValidateSourceGitRequiresCommit(t *testing.T) {
	r := &Recipe{
		Namespace:  Source,
		Name:       "hello",
		SourceBody: &SourceBody{URL: "https://example.invalid", Type: Git},
	}
	if err := Validate(r); !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
}

func TestAddDuplicateRecipe(t *testing.T) {
	set := NewSet()
	a := &Recipe{Namespace: Host, Name: "gcc", HostTargetBody: &HostTargetBody{}}
	b := &Recipe{Namespace: Host, Name: "gcc", HostTargetBody: &HostTargetBody{}}
	if err := set.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := set.Add(b); !errors.Is(err, ErrDuplicateRecipe) {
		t.Fatalf("expected ErrDuplicateRecipe, got %v", err)
	}
}
