package recipe

import "github.com/cruciblehq/chariotd/internal/crex"

// Validate checks r's field combination against the rules for its
// namespace and (for source recipes) type. It does not touch
// Dependencies[i].Resolved or HostTargetBody.Source — that is Resolve's
// job.
func Validate(r *Recipe) error {
	if r.Name == "" {
		return crex.Wrapf(ErrMissingRequiredField, "recipe in namespace `%s` has no name", r.Namespace)
	}

	switch r.Namespace {
	case Source:
		return validateSource(r)
	case Host, Target:
		return validateHostTarget(r)
	default:
		return crex.Wrapf(ErrMissingRequiredField, "recipe `%s` has no namespace", r.Name)
	}
}

func validateSource(r *Recipe) error {
	b := r.SourceBody
	if b == nil {
		return crex.Wrapf(ErrMissingRequiredField, "`%s` has no source body", r.Key())
	}
	if b.URL == "" {
		return crex.Wrapf(ErrMissingRequiredField, "`%s` missing url", r.Key())
	}

	isTar := b.Type == TarGz || b.Type == TarXz
	if isTar && b.B2Sum == "" {
		return crex.Wrapf(ErrMissingRequiredField, "`%s` missing b2sum", r.Key())
	}
	if !isTar && b.B2Sum != "" {
		return crex.Wrapf(ErrForbiddenFieldCombination, "`%s` has unexpected b2sum", r.Key())
	}
	if b.Type == Git && b.Commit == "" {
		return crex.Wrapf(ErrMissingRequiredField, "`%s` missing commit", r.Key())
	}
	if b.Type != Git && b.Commit != "" {
		return crex.Wrapf(ErrForbiddenFieldCombination, "`%s` has unexpected commit", r.Key())
	}
	return nil
}

func validateHostTarget(r *Recipe) error {
	if r.HostTargetBody == nil {
		return crex.Wrapf(ErrMissingRequiredField, "`%s` has no host/target body", r.Key())
	}
	return nil
}
