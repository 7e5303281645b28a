// Package embed implements the recipe variable embedder: a single,
// non-recursive left-to-right scan that splices `@(name)` and `@(name?)`
// references into a string against one or more layered scopes.
//
// Lookup is case-insensitive and stops at the first scope that defines the
// name, so callers pass scopes most-specific first (per-stage variables
// before recipe-wide ones). `@(name?)` splices to the empty string when
// name is undefined in every scope; plain `@(name)` is an error in that
// case. A literal `@(` with nothing before the closing paren, i.e. `@()`,
// is left untouched.
package embed
