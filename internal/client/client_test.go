package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/authorcore"
	"github.com/hmans/authors/internal/server"
)

func setupTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, err := authorcore.New(author.DefaultSeed(), authorcore.Options{})
	if err != nil {
		t.Fatalf("failed to create core: %v", err)
	}
	t.Cleanup(func() { core.Close() })

	h, err := server.New(core, server.Options{})
	if err != nil {
		t.Fatalf("server.New() error = %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return New(ts.URL + server.GraphQLPath)
}

func TestAuthors(t *testing.T) {
	c := setupTestClient(t)

	got, err := c.Authors(context.Background())
	if err != nil {
		t.Fatalf("Authors() error = %v", err)
	}
	if diff := cmp.Diff(author.DefaultSeed(), got); diff != "" {
		t.Errorf("Authors() mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthor(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	got, err := c.Author(ctx, "3")
	if err != nil {
		t.Fatalf("Author(3) error = %v", err)
	}
	if got == nil || got.Info.Name != "Somrita" {
		t.Errorf("Author(3) = %+v, want Somrita", got)
	}

	got, err = c.Author(ctx, "999")
	if err != nil {
		t.Fatalf("Author(999) error = %v", err)
	}
	if got != nil {
		t.Errorf("Author(999) = %+v, want nil", got)
	}
}

func TestFirstAndSecond(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	first, err := c.First(ctx)
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if first == nil || first.ID != "1" {
		t.Errorf("First() = %+v, want id 1", first)
	}

	second, err := c.Second(ctx)
	if err != nil {
		t.Fatalf("Second() error = %v", err)
	}
	if second == nil || second.ID != "2" {
		t.Errorf("Second() = %+v, want id 2", second)
	}
}

func TestMutations(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, authorcore.CreateAuthor{Name: "New", Gender: author.StringPtr("F")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	want := &author.Author{ID: "4", Info: author.PersonInfo{Name: "New", Gender: author.StringPtr("F")}}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Errorf("Create() mismatch (-want +got):\n%s", diff)
	}

	updated, err := c.Update(ctx, authorcore.UpdateAuthor{ID: "4", Age: author.IntPtr(30)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Info.Age == nil || *updated.Info.Age != 30 {
		t.Errorf("Update() age = %v, want 30", updated.Info.Age)
	}

	msg, err := c.Delete(ctx, "4")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if msg.Message != "Author with ID 4 deleted successfully" {
		t.Errorf("Delete() message = %q", msg.Message)
	}
}

func TestNotFound(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	_, err := c.Update(ctx, authorcore.UpdateAuthor{ID: "999", Name: author.StringPtr("X")})
	if !IsNotFound(err) {
		t.Errorf("Update(999) error = %v, want not found", err)
	}

	_, err = c.Delete(ctx, "999")
	var list gqlerror.List
	if !errors.As(err, &list) {
		t.Fatalf("Delete(999) error = %v, want gqlerror.List", err)
	}
	if list[0].Message != "Author not found" {
		t.Errorf("Delete(999) message = %q, want %q", list[0].Message, "Author not found")
	}

	if IsNotFound(errors.New("boom")) {
		t.Error("IsNotFound(plain error) = true, want false")
	}
}

func TestSearch(t *testing.T) {
	c := setupTestClient(t)

	got, err := c.Search(context.Background(), "gender:F", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("Search(gender:F) = %+v, want only id 3", got)
	}
}

func TestMutationsAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(ts.Close)

	c := New(ts.URL, WithRetryMax(2))
	if _, err := c.Create(context.Background(), authorcore.CreateAuthor{Name: "X"}); err == nil {
		t.Error("Create() error = nil, want error")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("mutation attempts = %d, want 1", got)
	}

	hits.Store(0)
	if _, err := c.Authors(context.Background()); err == nil {
		t.Error("Authors() error = nil, want error")
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("query attempts = %d, want 3", got)
	}
}
