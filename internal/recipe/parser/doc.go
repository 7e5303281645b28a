// Package parser implements the recipe DSL's hand-written recursive-descent
// scanner: a byte-oriented reader over a single file's contents, producing
// an unresolved recipe.Set. @import directives are resolved relative to
// the including file's directory and re-enter the scanner recursively;
// forward references between recipes are left unbound for recipe.Resolve.
package parser
