package graph

import "github.com/hmans/authors/internal/authorcore"

// Resolver is the root resolver for the GraphQL schema, serving both the
// Query and the Mutation type. It holds a reference to authorcore.Core for
// data access.
type Resolver struct {
	Core *authorcore.Core
}

// NewResolver creates a resolver backed by core.
func NewResolver(core *authorcore.Core) *Resolver {
	return &Resolver{Core: core}
}
