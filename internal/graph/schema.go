package graph

import (
	"bytes"
	"context"
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

//go:embed schema.graphqls
var schemaSDL string

// SDL returns the raw schema definition.
func SDL() string {
	return schemaSDL
}

// NewSchema parses the schema and binds it to r.
// Binding fails if a schema field has no matching resolver method.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, r)
}

// MustNewSchema is NewSchema that panics on error.
func MustNewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, r)
}

// FormatSchema returns the schema normalised by gqlparser's formatter.
func FormatSchema() (string, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(schema)
	return buf.String(), nil
}

// Execute runs a GraphQL request against schema.
// On success it returns just the data portion of the response.
func Execute(ctx context.Context, schema *graphql.Schema, query string, variables map[string]any, operationName string) ([]byte, gqlerror.List) {
	resp := schema.Exec(ctx, query, operationName, variables)
	if len(resp.Errors) > 0 {
		return resp.Data, convertErrors(resp.Errors)
	}
	return resp.Data, nil
}

// convertErrors maps engine errors onto gqlparser's error list so callers
// deal with a single error type.
func convertErrors(errs []*gqlerrors.QueryError) gqlerror.List {
	list := make(gqlerror.List, 0, len(errs))
	for _, e := range errs {
		ge := &gqlerror.Error{
			Message:    e.Message,
			Extensions: e.Extensions,
			Rule:       e.Rule,
		}
		for _, loc := range e.Locations {
			ge.Locations = append(ge.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
		}
		for _, p := range e.Path {
			switch v := p.(type) {
			case string:
				ge.Path = append(ge.Path, ast.PathName(v))
			case int:
				ge.Path = append(ge.Path, ast.PathIndex(v))
			}
		}
		list = append(list, ge)
	}
	return list
}
