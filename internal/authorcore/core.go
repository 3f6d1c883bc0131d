// Package authorcore implements the author queries and mutations on top of an
// in-memory author.Store. Every operation runs under a single lock, so each
// one is atomic with respect to the others.
package authorcore

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/search"
)

// UpdateMode controls which supplied fields updateAuthor applies.
type UpdateMode string

const (
	// UpdateTruthy applies a supplied field only when it is non-empty / non-zero.
	// An explicit "" or 0 is ignored.
	UpdateTruthy UpdateMode = "truthy"
	// UpdatePresence applies every supplied field, including "" and 0.
	UpdatePresence UpdateMode = "presence"
)

// Options configures a Core.
type Options struct {
	IDStrategy string     // see author.IDStrategies; empty means sequential
	UpdateMode UpdateMode // empty means UpdateTruthy
	Logger     *zap.Logger
}

// Core owns the author store and serves operations against it.
type Core struct {
	mu         sync.Mutex
	store      *author.Store
	ids        author.IDGenerator
	index      *search.Index
	updateMode UpdateMode
	logger     *zap.Logger

	// Search documents are keyed per record, not per id
	keys    map[*author.Author]string
	nextKey int
}

// New creates a Core whose store starts with seed.
func New(seed []*author.Author, opts Options) (*Core, error) {
	ids, err := author.NewIDGenerator(opts.IDStrategy)
	if err != nil {
		return nil, err
	}

	mode := opts.UpdateMode
	switch mode {
	case "":
		mode = UpdateTruthy
	case UpdateTruthy, UpdatePresence:
	default:
		return nil, fmt.Errorf("unknown update mode %q", mode)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	index, err := search.NewIndex()
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}

	// The store keeps its own copies so callers can't mutate it through the seed
	authors := make([]*author.Author, len(seed))
	for i, a := range seed {
		authors[i] = a.Clone()
	}

	c := &Core{
		store:      author.NewStore(authors),
		ids:        ids,
		index:      index,
		updateMode: mode,
		logger:     logger,
		keys:       make(map[*author.Author]string, len(authors)),
	}

	docs := make(map[string]*author.Author, len(authors))
	for _, a := range authors {
		docs[c.assignKey(a)] = a
	}
	if err := index.IndexAuthors(docs); err != nil {
		index.Close()
		return nil, fmt.Errorf("indexing seed: %w", err)
	}

	return c, nil
}

// assignKey gives a newly stored record its search key.
func (c *Core) assignKey(a *author.Author) string {
	c.nextKey++
	key := strconv.Itoa(c.nextKey)
	c.keys[a] = key
	return key
}

// Close releases the search index.
func (c *Core) Close() error {
	return c.index.Close()
}

// Len returns the number of authors.
func (c *Core) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// GetAuthors returns every author in insertion order.
func (c *Core) GetAuthors(ctx context.Context) []*author.Author {
	res, _ := c.Dispatch(ctx, GetAuthors{})
	return res.Authors
}

// GetFirstAuthor returns the first author, or nil when the store is empty.
func (c *Core) GetFirstAuthor(ctx context.Context) *author.Author {
	res, _ := c.Dispatch(ctx, GetFirstAuthor{})
	return res.Author
}

// GetSecondAuthor returns the second author, or nil when there are fewer than two.
func (c *Core) GetSecondAuthor(ctx context.Context) *author.Author {
	res, _ := c.Dispatch(ctx, GetSecondAuthor{})
	return res.Author
}

// FetchAuthorByID returns the author with the given id, or nil.
func (c *Core) FetchAuthorByID(ctx context.Context, id string) *author.Author {
	res, _ := c.Dispatch(ctx, FetchAuthorByID{ID: id})
	return res.Author
}

// SearchAuthors returns the authors matching a query string, in store order.
func (c *Core) SearchAuthors(ctx context.Context, op SearchAuthors) ([]*author.Author, error) {
	res, err := c.Dispatch(ctx, op)
	return res.Authors, err
}

// CreateAuthor appends a new author and returns it.
func (c *Core) CreateAuthor(ctx context.Context, op CreateAuthor) (*author.Author, error) {
	res, err := c.Dispatch(ctx, op)
	return res.Author, err
}

// UpdateAuthor changes the supplied fields of an author and returns it.
// It fails with a *NotFoundError when no author has op.ID.
func (c *Core) UpdateAuthor(ctx context.Context, op UpdateAuthor) (*author.Author, error) {
	res, err := c.Dispatch(ctx, op)
	return res.Author, err
}

// DeleteAuthor removes an author and returns a confirmation.
// It fails with a *NotFoundError when no author has op.ID.
func (c *Core) DeleteAuthor(ctx context.Context, op DeleteAuthor) (*DeleteMessage, error) {
	res, err := c.Dispatch(ctx, op)
	return res.Deleted, err
}

// The handlers below run with c.mu held. They return clones so results can be
// read after the lock is released.

func (c *Core) getAuthors() []*author.Author {
	authors := c.store.List()
	for i, a := range authors {
		authors[i] = a.Clone()
	}
	return authors
}

func (c *Core) authorAt(i int) *author.Author {
	return c.store.At(i).Clone()
}

func (c *Core) fetchAuthorByID(id string) *author.Author {
	a, _, _ := c.store.FindByID(id)
	return a.Clone()
}

func (c *Core) searchAuthors(op SearchAuthors) ([]*author.Author, error) {
	keys, err := c.index.Search(op.Query, op.Limit)
	if err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}

	matched := make(map[string]bool, len(keys))
	for _, key := range keys {
		matched[key] = true
	}

	result := []*author.Author{}
	for _, a := range c.store.List() {
		if matched[c.keys[a]] {
			result = append(result, a.Clone())
		}
	}
	return result, nil
}

func (c *Core) createAuthor(op CreateAuthor) (*author.Author, error) {
	a := &author.Author{
		ID: c.ids.NextID(c.store),
		Info: author.PersonInfo{
			Name: op.Name,
		},
	}
	if op.Gender != nil {
		gender := *op.Gender
		a.Info.Gender = &gender
	}

	c.store.Append(a)
	if err := c.index.IndexAuthor(c.assignKey(a), a); err != nil {
		// The author exists either way; a stale index only affects search
		c.logger.Warn("indexing author", zap.String("id", a.ID), zap.Error(err))
	}

	return a.Clone(), nil
}

func (c *Core) updateAuthor(op UpdateAuthor) (*author.Author, error) {
	a, idx, ok := c.store.FindByID(op.ID)
	if !ok {
		return nil, &NotFoundError{ID: op.ID}
	}

	if c.shouldApply(op.Name != nil, op.Name != nil && *op.Name != "") {
		a.Info.Name = *op.Name
	}
	if c.shouldApply(op.Gender != nil, op.Gender != nil && *op.Gender != "") {
		gender := *op.Gender
		a.Info.Gender = &gender
	}
	if c.shouldApply(op.Age != nil, op.Age != nil && *op.Age != 0) {
		age := *op.Age
		a.Info.Age = &age
	}

	// a points into the store already; the write back keeps the store the
	// single place records are assigned.
	c.store.ReplaceAt(idx, a)
	if err := c.index.IndexAuthor(c.keys[a], a); err != nil {
		c.logger.Warn("indexing author", zap.String("id", a.ID), zap.Error(err))
	}

	return a.Clone(), nil
}

// shouldApply decides whether a supplied update field is written.
func (c *Core) shouldApply(present, truthy bool) bool {
	if c.updateMode == UpdatePresence {
		return present
	}
	return truthy
}

func (c *Core) deleteAuthor(op DeleteAuthor) (*DeleteMessage, error) {
	a, idx, ok := c.store.FindByID(op.ID)
	if !ok {
		return nil, &NotFoundError{ID: op.ID}
	}

	c.store.RemoveAt(idx)

	key := c.keys[a]
	delete(c.keys, a)
	if err := c.index.DeleteAuthor(key); err != nil {
		c.logger.Warn("updating search index", zap.String("id", op.ID), zap.Error(err))
	}

	return newDeleteMessage(op.ID), nil
}

func (c *Core) logOperation(kind OpKind, err error) {
	fields := []zap.Field{
		zap.String("op", kind.String()),
		zap.Int("authors", c.store.Len()),
	}
	switch {
	case err != nil:
		c.logger.Info("operation failed", append(fields, zap.Error(err))...)
	case kind.IsMutation():
		c.logger.Info("operation", fields...)
	default:
		c.logger.Debug("operation", fields...)
	}
}
