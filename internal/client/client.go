// Package client talks to a running authors server over GraphQL.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/authorcore"
)

// DefaultEndpoint is where `authors serve` listens with the default config.
const DefaultEndpoint = "http://localhost:3501/graphql"

// Client is a GraphQL client bound to a single endpoint.
type Client struct {
	endpoint string
	http     *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger routes retry diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.http.Logger = leveledLogger{logger.Sugar()}
	}
}

// WithRetryMax sets how often a failed query is retried.
func WithRetryMax(n int) Option {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http.HTTPClient = hc
	}
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.Logger = nil
	rc.CheckRetry = checkRetry

	c := &Client{endpoint: endpoint, http: rc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type noRetryKey struct{}

// Mutations are not idempotent, so they get exactly one attempt.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Value(noRetryKey{}) != nil {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors"`
}

// Do sends a raw GraphQL request and returns the data portion of the response.
// GraphQL errors are returned as a gqlerror.List, alongside whatever data the
// server produced.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, operationName string) (json.RawMessage, error) {
	body, err := json.Marshal(request{Query: query, OperationName: operationName, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", c.endpoint, resp.Status)
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(r.Errors) > 0 {
		return r.Data, r.Errors
	}
	return r.Data, nil
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, out any) error {
	data, err := c.Do(ctx, query, vars, "")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *Client) mutate(ctx context.Context, query string, vars map[string]any, out any) error {
	return c.query(context.WithValue(ctx, noRetryKey{}, true), query, vars, out)
}

const authorFields = `id info { name age gender }`

// Authors returns every author in store order.
func (c *Client) Authors(ctx context.Context) ([]*author.Author, error) {
	var out struct {
		GetAuthors []*author.Author `json:"getAuthors"`
	}
	if err := c.query(ctx, `{ getAuthors { `+authorFields+` } }`, nil, &out); err != nil {
		return nil, err
	}
	return out.GetAuthors, nil
}

// First returns the author at position 0, or nil if the store is empty.
func (c *Client) First(ctx context.Context) (*author.Author, error) {
	var out struct {
		GetFirstAuthor *author.Author `json:"getFirstAuthor"`
	}
	if err := c.query(ctx, `{ getFirstAuthor { `+authorFields+` } }`, nil, &out); err != nil {
		return nil, err
	}
	return out.GetFirstAuthor, nil
}

// Second returns the author at position 1, or nil if there is none.
func (c *Client) Second(ctx context.Context) (*author.Author, error) {
	var out struct {
		GetSecondAuthor *author.Author `json:"getSecondAuthor"`
	}
	if err := c.query(ctx, `{ getSecondAuthor { `+authorFields+` } }`, nil, &out); err != nil {
		return nil, err
	}
	return out.GetSecondAuthor, nil
}

// Author returns the author with id, or nil if there is none.
func (c *Client) Author(ctx context.Context, id string) (*author.Author, error) {
	var out struct {
		FetchAuthorByID *author.Author `json:"fetchAuthorById"`
	}
	err := c.query(ctx, `query($id: ID!) { fetchAuthorById(id: $id) { `+authorFields+` } }`,
		map[string]any{"id": id}, &out)
	if err != nil {
		return nil, err
	}
	return out.FetchAuthorByID, nil
}

// Search runs a full-text query. A limit of 0 uses the server default.
func (c *Client) Search(ctx context.Context, q string, limit int) ([]*author.Author, error) {
	vars := map[string]any{"query": q}
	if limit > 0 {
		vars["limit"] = limit
	}
	var out struct {
		SearchAuthors []*author.Author `json:"searchAuthors"`
	}
	err := c.query(ctx, `query($query: String!, $limit: Int) { searchAuthors(query: $query, limit: $limit) { `+authorFields+` } }`,
		vars, &out)
	if err != nil {
		return nil, err
	}
	return out.SearchAuthors, nil
}

// Create adds a new author.
func (c *Client) Create(ctx context.Context, op authorcore.CreateAuthor) (*author.Author, error) {
	vars := map[string]any{"name": op.Name}
	if op.Gender != nil {
		vars["gender"] = *op.Gender
	}
	var out struct {
		CreateAuthor *author.Author `json:"createAuthor"`
	}
	err := c.mutate(ctx, `mutation($name: String!, $gender: String) { createAuthor(name: $name, gender: $gender) { `+authorFields+` } }`,
		vars, &out)
	if err != nil {
		return nil, err
	}
	return out.CreateAuthor, nil
}

// Update changes the supplied fields of an existing author.
func (c *Client) Update(ctx context.Context, op authorcore.UpdateAuthor) (*author.Author, error) {
	vars := map[string]any{"id": op.ID}
	if op.Name != nil {
		vars["name"] = *op.Name
	}
	if op.Gender != nil {
		vars["gender"] = *op.Gender
	}
	if op.Age != nil {
		vars["age"] = *op.Age
	}
	var out struct {
		UpdateAuthor *author.Author `json:"updateAuthor"`
	}
	err := c.mutate(ctx, `mutation($id: ID!, $name: String, $gender: String, $age: Int) { updateAuthor(id: $id, name: $name, gender: $gender, age: $age) { `+authorFields+` } }`,
		vars, &out)
	if err != nil {
		return nil, err
	}
	return out.UpdateAuthor, nil
}

// Delete removes an author.
func (c *Client) Delete(ctx context.Context, id string) (*authorcore.DeleteMessage, error) {
	var out struct {
		DeleteAuthor *authorcore.DeleteMessage `json:"deleteAuthor"`
	}
	err := c.mutate(ctx, `mutation($id: ID!) { deleteAuthor(id: $id) { id message } }`,
		map[string]any{"id": id}, &out)
	if err != nil {
		return nil, err
	}
	return out.DeleteAuthor, nil
}

// IsNotFound reports whether err carries the server's NOT_FOUND error code.
func IsNotFound(err error) bool {
	var list gqlerror.List
	if !errors.As(err, &list) {
		return false
	}
	for _, e := range list {
		if e.Extensions["code"] == "NOT_FOUND" {
			return true
		}
	}
	return false
}

// leveledLogger adapts a zap logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.s.Infow(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.s.Warnw(msg, kv...) }
