// Package graphql is a thin wrapper over github.com/graphql-go/graphql that
// keeps schema assembly in one place. The marketplace exposes a read-only
// graph, so a root query object is all most callers pass; a mutation root
// can be supplied when one exists.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds a schema from the root query object. An optional mutation
// root may follow.
func NewSchema(query *graphql.Object, mutation ...*graphql.Object) (graphql.Schema, error) {
	cfg := graphql.SchemaConfig{Query: query}
	if len(mutation) > 0 && mutation[0] != nil {
		cfg.Mutation = mutation[0]
	}
	return graphql.NewSchema(cfg)
}
