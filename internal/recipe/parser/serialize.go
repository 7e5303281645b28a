package parser

import (
	"fmt"
	"strings"

	"github.com/cruciblehq/chariotd/internal/recipe"
)

// Serialize renders set back into recipe DSL source text. It is the
// inverse of Parse for structural-equality purposes: parsing Serialize's
// output reproduces a set with the same recipes, fields, and dependency
// lists (though not necessarily byte-identical formatting or declaration
// order across @import boundaries, since Serialize emits everything in one
// file).
func Serialize(set *recipe.Set) string {
	var b strings.Builder
	for _, r := range set.All() {
		serializeRecipe(&b, r)
		b.WriteByte('\n')
	}
	return b.String()
}

func serializeRecipe(b *strings.Builder, r *recipe.Recipe) {
	fmt.Fprintf(b, "%s/%s {\n", r.Namespace, r.Name)

	switch {
	case r.SourceBody != nil:
		body := r.SourceBody
		fmt.Fprintf(b, "    url: %s\n", body.URL)
		fmt.Fprintf(b, "    type: %s\n", body.Type)
		if body.B2Sum != "" {
			fmt.Fprintf(b, "    b2sum: %s\n", body.B2Sum)
		}
		if body.Commit != "" {
			fmt.Fprintf(b, "    commit: %s\n", body.Commit)
		}
		if body.Patch != "" {
			fmt.Fprintf(b, "    patch: %s\n", body.Patch)
		}
		if len(r.Dependencies) > 0 || len(r.ImageDeps) > 0 {
			serializeDependencies(b, r)
		}
		if body.Strap != "" {
			fmt.Fprintf(b, "    strap {\n        %s\n    }\n", body.Strap)
		}
	case r.HostTargetBody != nil:
		body := r.HostTargetBody
		if body.SourceName != "" {
			fmt.Fprintf(b, "    source: %s\n", body.SourceName)
		}
		if len(r.Dependencies) > 0 || len(r.ImageDeps) > 0 {
			serializeDependencies(b, r)
		}
		if body.Configure != "" {
			fmt.Fprintf(b, "    configure {\n        %s\n    }\n", body.Configure)
		}
		if body.Build != "" {
			fmt.Fprintf(b, "    build {\n        %s\n    }\n", body.Build)
		}
		if body.Install != "" {
			fmt.Fprintf(b, "    install {\n        %s\n    }\n", body.Install)
		}
	}

	b.WriteString("}\n")
}

func serializeDependencies(b *strings.Builder, r *recipe.Recipe) {
	b.WriteString("    dependencies [\n")
	for _, d := range r.Dependencies {
		prefix := ""
		if d.Runtime {
			prefix = "*"
		}
		fmt.Fprintf(b, "        %s%s/%s\n", prefix, d.Namespace, d.Name)
	}
	for _, d := range r.ImageDeps {
		prefix := ""
		if d.Runtime {
			prefix = "*"
		}
		fmt.Fprintf(b, "        %simage/%s\n", prefix, d.Name)
	}
	b.WriteString("    ]\n")
}
