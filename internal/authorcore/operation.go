package authorcore

import (
	"context"
	"fmt"

	"github.com/hmans/authors/internal/author"
)

// OpKind identifies an operation.
type OpKind int

const (
	OpGetAuthors OpKind = iota
	OpGetFirstAuthor
	OpGetSecondAuthor
	OpFetchAuthorByID
	OpSearchAuthors
	OpCreateAuthor
	OpUpdateAuthor
	OpDeleteAuthor
)

// String returns the GraphQL field name of the operation.
func (k OpKind) String() string {
	switch k {
	case OpGetAuthors:
		return "getAuthors"
	case OpGetFirstAuthor:
		return "getFirstAuthor"
	case OpGetSecondAuthor:
		return "getSecondAuthor"
	case OpFetchAuthorByID:
		return "fetchAuthorById"
	case OpSearchAuthors:
		return "searchAuthors"
	case OpCreateAuthor:
		return "createAuthor"
	case OpUpdateAuthor:
		return "updateAuthor"
	case OpDeleteAuthor:
		return "deleteAuthor"
	default:
		return "unknown"
	}
}

// IsMutation reports whether the operation changes the store.
func (k OpKind) IsMutation() bool {
	return k == OpCreateAuthor || k == OpUpdateAuthor || k == OpDeleteAuthor
}

// Operation is one query or mutation together with its arguments.
// The set of implementations is closed: only the types in this file satisfy it.
type Operation interface {
	Kind() OpKind
	sealed()
}

// GetAuthors lists every author.
type GetAuthors struct{}

// GetFirstAuthor returns the author at position 0.
type GetFirstAuthor struct{}

// GetSecondAuthor returns the author at position 1.
type GetSecondAuthor struct{}

// FetchAuthorByID looks an author up by id.
type FetchAuthorByID struct {
	ID string
}

// SearchAuthors runs a full-text query over the authors.
type SearchAuthors struct {
	Query string
	Limit int
}

// CreateAuthor adds a new author. Age cannot be set at creation.
type CreateAuthor struct {
	Name   string
	Gender *string
}

// UpdateAuthor overwrites the supplied fields of an existing author.
// Nil fields are left untouched.
type UpdateAuthor struct {
	ID     string
	Name   *string
	Gender *string
	Age    *int
}

// DeleteAuthor removes an author.
type DeleteAuthor struct {
	ID string
}

func (GetAuthors) Kind() OpKind      { return OpGetAuthors }
func (GetFirstAuthor) Kind() OpKind  { return OpGetFirstAuthor }
func (GetSecondAuthor) Kind() OpKind { return OpGetSecondAuthor }
func (FetchAuthorByID) Kind() OpKind { return OpFetchAuthorByID }
func (SearchAuthors) Kind() OpKind   { return OpSearchAuthors }
func (CreateAuthor) Kind() OpKind    { return OpCreateAuthor }
func (UpdateAuthor) Kind() OpKind    { return OpUpdateAuthor }
func (DeleteAuthor) Kind() OpKind    { return OpDeleteAuthor }

func (GetAuthors) sealed()      {}
func (GetFirstAuthor) sealed()  {}
func (GetSecondAuthor) sealed() {}
func (FetchAuthorByID) sealed() {}
func (SearchAuthors) sealed()   {}
func (CreateAuthor) sealed()    {}
func (UpdateAuthor) sealed()    {}
func (DeleteAuthor) sealed()    {}

// DeleteMessage confirms a deletion.
type DeleteMessage struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func newDeleteMessage(id string) *DeleteMessage {
	return &DeleteMessage{
		ID:      id,
		Message: fmt.Sprintf("Author with ID %s deleted successfully", id),
	}
}

// Result carries the value produced by an operation. Exactly one field is
// meaningful for a given OpKind:
//   - Authors for OpGetAuthors and OpSearchAuthors
//   - Author for the single-author queries and for create/update (nil = absent)
//   - Deleted for OpDeleteAuthor
type Result struct {
	Kind    OpKind
	Authors []*author.Author
	Author  *author.Author
	Deleted *DeleteMessage
}

// Dispatch routes op to its handler while holding the core lock.
func (c *Core) Dispatch(ctx context.Context, op Operation) (Result, error) {
	if op == nil {
		return Result{}, ErrUnknownOperation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kind := op.Kind()
	res := Result{Kind: kind}
	var err error

	switch o := op.(type) {
	case GetAuthors:
		res.Authors = c.getAuthors()
	case GetFirstAuthor:
		res.Author = c.authorAt(0)
	case GetSecondAuthor:
		res.Author = c.authorAt(1)
	case FetchAuthorByID:
		res.Author = c.fetchAuthorByID(o.ID)
	case SearchAuthors:
		res.Authors, err = c.searchAuthors(o)
	case CreateAuthor:
		res.Author, err = c.createAuthor(o)
	case UpdateAuthor:
		res.Author, err = c.updateAuthor(o)
	case DeleteAuthor:
		res.Deleted, err = c.deleteAuthor(o)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownOperation, op)
	}

	c.logOperation(kind, err)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
