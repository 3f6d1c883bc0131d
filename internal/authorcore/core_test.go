package authorcore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hmans/authors/internal/author"
)

func setupTestCore(t *testing.T, opts Options) *Core {
	t.Helper()
	core, err := New(author.DefaultSeed(), opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { core.Close() })
	return core
}

func authorIDs(authors []*author.Author) []string {
	ids := make([]string, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	return ids
}

func TestGetAuthorsIsIdempotent(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	first := core.GetAuthors(ctx)
	second := core.GetAuthors(ctx)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("GetAuthors() not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(author.DefaultSeed(), first); diff != "" {
		t.Errorf("GetAuthors() mismatch with seed (-want +got):\n%s", diff)
	}
}

func TestGetFirstAndSecondAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		if got := core.GetFirstAuthor(ctx); got == nil || got.Info.Name != "Indranil" {
			t.Errorf("GetFirstAuthor() = %v, want Indranil", got)
		}
		if got := core.GetSecondAuthor(ctx); got == nil || got.Info.Name != "Ridhaan" {
			t.Errorf("GetSecondAuthor() = %v, want Ridhaan", got)
		}
	})

	t.Run("one author", func(t *testing.T) {
		core, err := New(author.DefaultSeed()[:1], Options{})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer core.Close()
		if got := core.GetFirstAuthor(ctx); got == nil {
			t.Error("GetFirstAuthor() = nil, want author")
		}
		if got := core.GetSecondAuthor(ctx); got != nil {
			t.Errorf("GetSecondAuthor() = %v, want nil", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		core, err := New(nil, Options{})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer core.Close()
		if got := core.GetFirstAuthor(ctx); got != nil {
			t.Errorf("GetFirstAuthor() = %v, want nil", got)
		}
		if got := core.GetAuthors(ctx); len(got) != 0 {
			t.Errorf("GetAuthors() count = %d, want 0", len(got))
		}
	})
}

func TestFetchAuthorByID(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		got := core.FetchAuthorByID(ctx, id)
		if got == nil {
			t.Errorf("FetchAuthorByID(%q) = nil", id)
			continue
		}
		if got.ID != id {
			t.Errorf("FetchAuthorByID(%q).ID = %q", id, got.ID)
		}
	}

	if got := core.FetchAuthorByID(ctx, "999"); got != nil {
		t.Errorf("FetchAuthorByID(999) = %v, want nil", got)
	}
}

func TestCreateAuthor(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	t.Run("with gender", func(t *testing.T) {
		got, err := core.CreateAuthor(ctx, CreateAuthor{Name: "New", Gender: author.StringPtr("F")})
		if err != nil {
			t.Fatalf("CreateAuthor() error = %v", err)
		}
		want := &author.Author{ID: "4", Info: author.PersonInfo{Name: "New", Gender: author.StringPtr("F")}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("CreateAuthor() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("without gender", func(t *testing.T) {
		got, err := core.CreateAuthor(ctx, CreateAuthor{Name: "X"})
		if err != nil {
			t.Fatalf("CreateAuthor() error = %v", err)
		}
		if got.Info.Name != "X" {
			t.Errorf("CreateAuthor().Info.Name = %q, want X", got.Info.Name)
		}
		if got.Info.Gender != nil || got.Info.Age != nil {
			t.Errorf("CreateAuthor() info = %+v, want gender and age absent", got.Info)
		}
	})

	all := core.GetAuthors(ctx)
	if len(all) != 5 {
		t.Fatalf("GetAuthors() count = %d, want 5", len(all))
	}
	if last := all[len(all)-1]; last.ID != "5" || last.Info.Name != "X" {
		t.Errorf("last author = %+v, want id 5 named X", last)
	}
}

func TestUpdateAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		got, err := core.UpdateAuthor(ctx, UpdateAuthor{ID: "1", Gender: author.StringPtr("F")})
		if err != nil {
			t.Fatalf("UpdateAuthor() error = %v", err)
		}
		want := &author.Author{ID: "1", Info: author.PersonInfo{Name: "Indranil", Age: author.IntPtr(39), Gender: author.StringPtr("F")}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("UpdateAuthor() mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, core.FetchAuthorByID(ctx, "1")); diff != "" {
			t.Errorf("stored author mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("age", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		got, err := core.UpdateAuthor(ctx, UpdateAuthor{ID: "3", Age: author.IntPtr(36)})
		if err != nil {
			t.Fatalf("UpdateAuthor() error = %v", err)
		}
		want := &author.Author{ID: "3", Info: author.PersonInfo{Name: "Somrita", Age: author.IntPtr(36), Gender: author.StringPtr("F")}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("UpdateAuthor() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("sets age on author without one", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		created, _ := core.CreateAuthor(ctx, CreateAuthor{Name: "New"})
		got, err := core.UpdateAuthor(ctx, UpdateAuthor{ID: created.ID, Age: author.IntPtr(7)})
		if err != nil {
			t.Fatalf("UpdateAuthor() error = %v", err)
		}
		if got.Info.Age == nil || *got.Info.Age != 7 {
			t.Errorf("UpdateAuthor().Info.Age = %v, want 7", got.Info.Age)
		}
	})

	t.Run("falsy values ignored in truthy mode", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		got, err := core.UpdateAuthor(ctx, UpdateAuthor{
			ID:     "2",
			Name:   author.StringPtr(""),
			Gender: author.StringPtr(""),
			Age:    author.IntPtr(0),
		})
		if err != nil {
			t.Fatalf("UpdateAuthor() error = %v", err)
		}
		if diff := cmp.Diff(author.DefaultSeed()[1], got); diff != "" {
			t.Errorf("UpdateAuthor() changed fields (-want +got):\n%s", diff)
		}
	})

	t.Run("falsy values applied in presence mode", func(t *testing.T) {
		core := setupTestCore(t, Options{UpdateMode: UpdatePresence})
		got, err := core.UpdateAuthor(ctx, UpdateAuthor{ID: "2", Gender: author.StringPtr(""), Age: author.IntPtr(0)})
		if err != nil {
			t.Fatalf("UpdateAuthor() error = %v", err)
		}
		want := &author.Author{ID: "2", Info: author.PersonInfo{Name: "Ridhaan", Age: author.IntPtr(0), Gender: author.StringPtr("")}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("UpdateAuthor() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("not found", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		_, err := core.UpdateAuthor(ctx, UpdateAuthor{ID: "999", Name: author.StringPtr("X")})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("UpdateAuthor() error = %v, want ErrNotFound", err)
		}
		if err.Error() != "Author not found" {
			t.Errorf("UpdateAuthor() error message = %q, want %q", err.Error(), "Author not found")
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.ID != "999" {
			t.Errorf("UpdateAuthor() error = %#v, want *NotFoundError{ID: 999}", err)
		}
	})
}

func TestDeleteAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and reports", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		got, err := core.DeleteAuthor(ctx, DeleteAuthor{ID: "2"})
		if err != nil {
			t.Fatalf("DeleteAuthor() error = %v", err)
		}
		want := &DeleteMessage{ID: "2", Message: "Author with ID 2 deleted successfully"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("DeleteAuthor() mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"1", "3"}, authorIDs(core.GetAuthors(ctx))); diff != "" {
			t.Errorf("ids after delete (-want +got):\n%s", diff)
		}
	})

	t.Run("not found", func(t *testing.T) {
		core := setupTestCore(t, Options{})
		_, err := core.DeleteAuthor(ctx, DeleteAuthor{ID: "999"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("DeleteAuthor() error = %v, want ErrNotFound", err)
		}
		if core.Len() != 3 {
			t.Errorf("Len() = %d, want 3", core.Len())
		}
	})
}

func TestSequentialIDCollisionAfterDelete(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	if _, err := core.DeleteAuthor(ctx, DeleteAuthor{ID: "1"}); err != nil {
		t.Fatalf("DeleteAuthor() error = %v", err)
	}
	created, err := core.CreateAuthor(ctx, CreateAuthor{Name: "Dup"})
	if err != nil {
		t.Fatalf("CreateAuthor() error = %v", err)
	}
	if created.ID != "3" {
		t.Fatalf("CreateAuthor().ID = %q, want 3", created.ID)
	}

	// Both records now carry id 3; lookups return the earlier one
	if diff := cmp.Diff([]string{"2", "3", "3"}, authorIDs(core.GetAuthors(ctx))); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if got := core.FetchAuthorByID(ctx, "3"); got.Info.Name != "Somrita" {
		t.Errorf("FetchAuthorByID(3).Info.Name = %q, want Somrita", got.Info.Name)
	}

	// Deleting one duplicate leaves the other searchable
	if _, err := core.DeleteAuthor(ctx, DeleteAuthor{ID: "3"}); err != nil {
		t.Fatalf("DeleteAuthor() error = %v", err)
	}
	got, err := core.SearchAuthors(ctx, SearchAuthors{Query: "dup"})
	if err != nil {
		t.Fatalf("SearchAuthors() error = %v", err)
	}
	if diff := cmp.Diff([]string{"3"}, authorIDs(got)); diff != "" {
		t.Errorf("SearchAuthors(dup) (-want +got):\n%s", diff)
	}
}

func TestSearchWithDuplicateIDs(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	if _, err := core.DeleteAuthor(ctx, DeleteAuthor{ID: "1"}); err != nil {
		t.Fatalf("DeleteAuthor() error = %v", err)
	}
	created, err := core.CreateAuthor(ctx, CreateAuthor{Name: "Newbie"})
	if err != nil {
		t.Fatalf("CreateAuthor() error = %v", err)
	}
	if created.ID != "3" {
		t.Fatalf("CreateAuthor().ID = %q, want 3", created.ID)
	}

	tests := []struct {
		query string
		want  string
	}{
		{"somrita", "Somrita"},
		{"newbie", "Newbie"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := core.SearchAuthors(ctx, SearchAuthors{Query: tt.query})
			if err != nil {
				t.Fatalf("SearchAuthors() error = %v", err)
			}
			if len(got) != 1 || got[0].Info.Name != tt.want {
				t.Errorf("SearchAuthors(%q) = %v, want only %s", tt.query, got, tt.want)
			}
		})
	}

	// Updating the later duplicate leaves the earlier one's document alone
	if _, err := core.UpdateAuthor(ctx, UpdateAuthor{ID: "3", Name: author.StringPtr("Somrita Renamed")}); err != nil {
		t.Fatalf("UpdateAuthor() error = %v", err)
	}
	got, err := core.SearchAuthors(ctx, SearchAuthors{Query: "newbie"})
	if err != nil {
		t.Fatalf("SearchAuthors() error = %v", err)
	}
	if len(got) != 1 || got[0].Info.Name != "Newbie" {
		t.Errorf("SearchAuthors(newbie) after update = %v, want only Newbie", got)
	}
}

func TestCounterIDsAvoidCollision(t *testing.T) {
	core := setupTestCore(t, Options{IDStrategy: author.IDCounter})
	ctx := context.Background()

	core.DeleteAuthor(ctx, DeleteAuthor{ID: "1"})
	created, err := core.CreateAuthor(ctx, CreateAuthor{Name: "Unique"})
	if err != nil {
		t.Fatalf("CreateAuthor() error = %v", err)
	}
	if created.ID != "4" {
		t.Errorf("CreateAuthor().ID = %q, want 4", created.ID)
	}
}

func TestSearchAuthors(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	t.Run("store order", func(t *testing.T) {
		got, err := core.SearchAuthors(ctx, SearchAuthors{Query: "gender:M"})
		if err != nil {
			t.Fatalf("SearchAuthors() error = %v", err)
		}
		if diff := cmp.Diff([]string{"1", "2"}, authorIDs(got)); diff != "" {
			t.Errorf("SearchAuthors() (-want +got):\n%s", diff)
		}
	})

	t.Run("follows updates", func(t *testing.T) {
		core.UpdateAuthor(ctx, UpdateAuthor{ID: "1", Name: author.StringPtr("Renamed")})
		got, err := core.SearchAuthors(ctx, SearchAuthors{Query: "renamed"})
		if err != nil {
			t.Fatalf("SearchAuthors() error = %v", err)
		}
		if diff := cmp.Diff([]string{"1"}, authorIDs(got)); diff != "" {
			t.Errorf("SearchAuthors() (-want +got):\n%s", diff)
		}
	})

	t.Run("no match", func(t *testing.T) {
		got, err := core.SearchAuthors(ctx, SearchAuthors{Query: "nobody"})
		if err != nil {
			t.Fatalf("SearchAuthors() error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("SearchAuthors() = %v, want empty slice", got)
		}
	})
}

func TestResultsAreSnapshots(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	got := core.FetchAuthorByID(ctx, "1")
	got.Info.Name = "Mutated"
	*got.Info.Age = 1

	again := core.FetchAuthorByID(ctx, "1")
	if again.Info.Name != "Indranil" || *again.Info.Age != 39 {
		t.Errorf("store changed through a returned value: %+v", again.Info)
	}
}

func TestScenario(t *testing.T) {
	core := setupTestCore(t, Options{})
	ctx := context.Background()

	if got := core.GetFirstAuthor(ctx); got.ID != "1" || got.Info.Name != "Indranil" {
		t.Errorf("GetFirstAuthor() = %+v", got)
	}
	if got := core.GetSecondAuthor(ctx); got.ID != "2" || got.Info.Name != "Ridhaan" {
		t.Errorf("GetSecondAuthor() = %+v", got)
	}

	created, err := core.CreateAuthor(ctx, CreateAuthor{Name: "New", Gender: author.StringPtr("F")})
	if err != nil {
		t.Fatalf("CreateAuthor() error = %v", err)
	}
	wantCreated := &author.Author{ID: "4", Info: author.PersonInfo{Name: "New", Gender: author.StringPtr("F")}}
	if diff := cmp.Diff(wantCreated, created); diff != "" {
		t.Errorf("CreateAuthor() (-want +got):\n%s", diff)
	}

	updated, err := core.UpdateAuthor(ctx, UpdateAuthor{ID: "3", Age: author.IntPtr(36)})
	if err != nil {
		t.Fatalf("UpdateAuthor() error = %v", err)
	}
	wantUpdated := &author.Author{ID: "3", Info: author.PersonInfo{Name: "Somrita", Age: author.IntPtr(36), Gender: author.StringPtr("F")}}
	if diff := cmp.Diff(wantUpdated, updated); diff != "" {
		t.Errorf("UpdateAuthor() (-want +got):\n%s", diff)
	}
}

func TestConcurrentMutations(t *testing.T) {
	core := setupTestCore(t, Options{IDStrategy: author.IDCounter})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := core.CreateAuthor(ctx, CreateAuthor{Name: "Parallel"})
			if err != nil {
				t.Errorf("CreateAuthor() error = %v", err)
				return
			}
			core.UpdateAuthor(ctx, UpdateAuthor{ID: a.ID, Age: author.IntPtr(1)})
			core.GetAuthors(ctx)
		}()
	}
	wg.Wait()

	if core.Len() != 23 {
		t.Errorf("Len() = %d, want 23", core.Len())
	}
	seen := make(map[string]bool)
	for _, id := range authorIDs(core.GetAuthors(ctx)) {
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(nil, Options{IDStrategy: "bogus"}); err == nil {
		t.Error("New() with bad id strategy: error = nil")
	}
	if _, err := New(nil, Options{UpdateMode: "sometimes"}); err == nil {
		t.Error("New() with bad update mode: error = nil")
	}
}

func TestNewCopiesSeed(t *testing.T) {
	seed := author.DefaultSeed()
	core, err := New(seed, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer core.Close()

	seed[0].Info.Name = "Changed"
	if got := core.GetFirstAuthor(context.Background()); got.Info.Name != "Indranil" {
		t.Errorf("GetFirstAuthor().Info.Name = %q, want Indranil", got.Info.Name)
	}
}
