package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/authorcore"
)

// GetAuthors is the resolver for the getAuthors field.
func (r *Resolver) GetAuthors(ctx context.Context) []*AuthorResolver {
	return wrapAuthors(r.Core.GetAuthors(ctx))
}

// GetFirstAuthor is the resolver for the getFirstAuthor field.
func (r *Resolver) GetFirstAuthor(ctx context.Context) *AuthorResolver {
	return wrapAuthor(r.Core.GetFirstAuthor(ctx))
}

// GetSecondAuthor is the resolver for the getSecondAuthor field.
func (r *Resolver) GetSecondAuthor(ctx context.Context) *AuthorResolver {
	return wrapAuthor(r.Core.GetSecondAuthor(ctx))
}

// FetchAuthorByID is the resolver for the fetchAuthorById field.
func (r *Resolver) FetchAuthorByID(ctx context.Context, args struct{ ID graphql.ID }) *AuthorResolver {
	return wrapAuthor(r.Core.FetchAuthorByID(ctx, string(args.ID)))
}

// SearchAuthors is the resolver for the searchAuthors field.
func (r *Resolver) SearchAuthors(ctx context.Context, args struct {
	Query string
	Limit *int32
}) ([]*AuthorResolver, error) {
	op := authorcore.SearchAuthors{Query: args.Query}
	if args.Limit != nil {
		op.Limit = int(*args.Limit)
	}
	authors, err := r.Core.SearchAuthors(ctx, op)
	if err != nil {
		return nil, newError(err, "BAD_QUERY")
	}
	return wrapAuthors(authors), nil
}

// CreateAuthor is the resolver for the createAuthor field.
func (r *Resolver) CreateAuthor(ctx context.Context, args struct {
	Name   string
	Gender *string
}) (*AuthorResolver, error) {
	a, err := r.Core.CreateAuthor(ctx, authorcore.CreateAuthor{Name: args.Name, Gender: args.Gender})
	if err != nil {
		return nil, err
	}
	return wrapAuthor(a), nil
}

// UpdateAuthor is the resolver for the updateAuthor field.
func (r *Resolver) UpdateAuthor(ctx context.Context, args struct {
	ID     graphql.ID
	Name   *string
	Gender *string
	Age    *int32
}) (*AuthorResolver, error) {
	op := authorcore.UpdateAuthor{
		ID:     string(args.ID),
		Name:   args.Name,
		Gender: args.Gender,
	}
	if args.Age != nil {
		op.Age = author.IntPtr(int(*args.Age))
	}

	a, err := r.Core.UpdateAuthor(ctx, op)
	if err != nil {
		return nil, classify(err)
	}
	return wrapAuthor(a), nil
}

// DeleteAuthor is the resolver for the deleteAuthor field.
func (r *Resolver) DeleteAuthor(ctx context.Context, args struct{ ID graphql.ID }) (*DeleteMessageResolver, error) {
	msg, err := r.Core.DeleteAuthor(ctx, authorcore.DeleteAuthor{ID: string(args.ID)})
	if err != nil {
		return nil, classify(err)
	}
	return &DeleteMessageResolver{msg: msg}, nil
}

// AuthorResolver resolves the fields of Author.
type AuthorResolver struct {
	a *author.Author
}

func wrapAuthor(a *author.Author) *AuthorResolver {
	if a == nil {
		return nil
	}
	return &AuthorResolver{a: a}
}

func wrapAuthors(authors []*author.Author) []*AuthorResolver {
	result := make([]*AuthorResolver, len(authors))
	for i, a := range authors {
		result[i] = &AuthorResolver{a: a}
	}
	return result
}

func (r *AuthorResolver) ID() graphql.ID {
	return graphql.ID(r.a.ID)
}

func (r *AuthorResolver) Info() *PersonResolver {
	return &PersonResolver{info: &r.a.Info}
}

// PersonResolver resolves the fields of Person.
type PersonResolver struct {
	info *author.PersonInfo
}

func (r *PersonResolver) Name() string {
	return r.info.Name
}

func (r *PersonResolver) Age() *int32 {
	if r.info.Age == nil {
		return nil
	}
	age := int32(*r.info.Age)
	return &age
}

func (r *PersonResolver) Gender() *string {
	return r.info.Gender
}

// DeleteMessageResolver resolves the fields of DeleteMessage.
type DeleteMessageResolver struct {
	msg *authorcore.DeleteMessage
}

func (r *DeleteMessageResolver) ID() graphql.ID {
	return graphql.ID(r.msg.ID)
}

func (r *DeleteMessageResolver) Message() string {
	return r.msg.Message
}

// resolverError adds a machine-readable code to a resolver error. The engine
// copies Extensions into the response's error entry.
type resolverError struct {
	err  error
	code string
}

func newError(err error, code string) *resolverError {
	return &resolverError{err: err, code: code}
}

func (e *resolverError) Error() string { return e.err.Error() }

func (e *resolverError) Unwrap() error { return e.err }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func classify(err error) error {
	if errors.Is(err, authorcore.ErrNotFound) {
		return newError(err, "NOT_FOUND")
	}
	return err
}
