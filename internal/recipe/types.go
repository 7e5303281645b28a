package recipe

import "strings"

// Namespace identifies which of the three recipe namespaces a recipe
// belongs to.
type Namespace int

const (
	Source Namespace = iota
	Host
	Target
)

func (n Namespace) String() string {
	switch n {
	case Source:
		return "source"
	case Host:
		return "host"
	case Target:
		return "target"
	default:
		return "unknown"
	}
}

// ParseNamespace parses "source", "host", or "target" into a Namespace.
func ParseNamespace(s string) (Namespace, error) {
	switch s {
	case "source":
		return Source, nil
	case "host":
		return Host, nil
	case "target":
		return Target, nil
	default:
		return 0, ErrUnknownNamespace
	}
}

// ParseKey parses a "namespace/name" key (as produced by Recipe.Key) back
// into its components.
func ParseKey(key string) (Namespace, string, error) {
	idx := strings.IndexByte(key, '/')
	if idx < 0 {
		return 0, "", ErrUnknownNamespace
	}
	ns, err := ParseNamespace(key[:idx])
	if err != nil {
		return 0, "", err
	}
	return ns, key[idx+1:], nil
}

// SourceType is the fetch mechanism for a source recipe.
type SourceType int

const (
	TarGz SourceType = iota
	TarXz
	Git
	Local
)

func (t SourceType) String() string {
	switch t {
	case TarGz:
		return "tar.gz"
	case TarXz:
		return "tar.xz"
	case Git:
		return "git"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// Dependency is a reference from one recipe to another, resolved by name
// during the resolution pass.
type Dependency struct {
	Namespace Namespace
	Name      string
	Runtime   bool
	Resolved  *Recipe
}

// ImageDependency names a host-package to be installed in the layered
// image a recipe builds against.
type ImageDependency struct {
	Name    string
	Runtime bool
}

// Status holds the mutable lifecycle bits the orchestrator flips as it
// processes a recipe.
type Status struct {
	Built       bool
	Failed      bool
	Invalidated bool
}

// SourceBody holds the fields exclusive to a source-namespace recipe.
type SourceBody struct {
	URL    string
	Type   SourceType
	B2Sum  string // required iff Type is a tar variant, forbidden otherwise
	Commit string // required iff Type is Git, forbidden otherwise
	Patch  string // optional, filename under the patches directory
	Strap  string // optional shell block
}

// HostTargetBody holds the fields exclusive to a host- or target-namespace
// recipe.
type HostTargetBody struct {
	SourceName string // name of a source-namespace recipe, empty if unset
	Source     *Recipe

	Configure string
	Build     string
	Install   string
}

// Recipe is a single declaration in a recipe set, uniquely identified by
// (Namespace, Name). Namespace together with exactly one of SourceBody or
// HostTargetBody (matching Namespace) forms the Go substitute for a tagged
// union: Source recipes carry a non-nil SourceBody and nil HostTargetBody,
// Host/Target recipes the reverse.
type Recipe struct {
	Namespace Namespace
	Name      string

	Dependencies     []Dependency
	ImageDeps        []ImageDependency
	Status           Status
	SourceBody       *SourceBody
	HostTargetBody   *HostTargetBody
}

// IsSource reports whether r belongs to the source namespace.
func (r *Recipe) IsSource() bool { return r.Namespace == Source }

// Key returns the (namespace, name) identity string used for lookup and as
// a map key during resolution.
func (r *Recipe) Key() string { return r.Namespace.String() + "/" + r.Name }
