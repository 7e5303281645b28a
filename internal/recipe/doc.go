// Package recipe defines the in-memory recipe model: namespaces, recipes,
// dependency references, and the resolver that binds forward references
// after parsing. A recipe is uniquely identified by (namespace, name) and
// lives for the process lifetime once parsed; nothing is freed
// incrementally.
package recipe
