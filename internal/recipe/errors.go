package recipe

import "errors"

var (
	// ErrResolve wraps any failure during dependency resolution.
	ErrResolve = errors.New("recipe: resolution failed")

	// ErrUnresolved names a dependency or source reference that has no
	// matching recipe in the set.
	ErrUnresolved = errors.New("recipe: unresolved reference")

	// ErrMissingRequiredField names a field required for a recipe's
	// namespace/type combination that was not set.
	ErrMissingRequiredField = errors.New("recipe: missing required field")

	// ErrForbiddenFieldCombination names a field that is not permitted for
	// a recipe's namespace/type combination but was set anyway.
	ErrForbiddenFieldCombination = errors.New("recipe: forbidden field combination")

	// ErrDuplicateRecipe names a (namespace, name) pair declared more than
	// once within the same set.
	ErrDuplicateRecipe = errors.New("recipe: duplicate recipe")

	// ErrUnknownNamespace names a string that does not parse as one of
	// "source", "host", "target".
	ErrUnknownNamespace = errors.New("recipe: unknown namespace")
)
