// types package contains the public API types
// that are shared between the fluent client and the REST endpoint
package types

// Doc is a JSON-like document: a mapping from string keys to nested
// mappings, sequences and scalars. Compiled DSL fragments, request bodies
// and decoded response bodies all use this shape.
type Doc map[string]interface{}
