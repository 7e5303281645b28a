package recipe

import "github.com/cruciblehq/chariotd/internal/crex"

// Resolve binds every forward reference in set: each dependency's Resolved
// pointer and each host/target recipe's HostTargetBody.Source pointer. It
// is the sole mutator of those fields; apart from Status, which the
// orchestrator updates, everything else about a recipe is fixed once
// parsed.
//
// Go recipes are referenced by pointer once resolved rather than by an
// arena index, since the garbage collector keeps a *Recipe alive for as
// long as anything holds it.
func Resolve(set *Set) error {
	for _, r := range set.recipes {
		for i := range r.Dependencies {
			dep := &r.Dependencies[i]
			target, ok := set.Lookup(dep.Namespace, dep.Name)
			if !ok {
				return crex.Wrapf(ErrUnresolved, "`%s` depends on missing `%s/%s`", r.Key(), dep.Namespace, dep.Name)
			}
			dep.Resolved = target
		}

		if r.HostTargetBody == nil || r.HostTargetBody.SourceName == "" {
			continue
		}
		source, ok := set.Lookup(Source, r.HostTargetBody.SourceName)
		if !ok {
			return crex.Wrapf(ErrUnresolved, "`%s` references missing source `source/%s`", r.Key(), r.HostTargetBody.SourceName)
		}
		r.HostTargetBody.Source = source
	}
	return nil
}
