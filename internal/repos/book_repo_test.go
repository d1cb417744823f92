package repos_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"booknest/internal/repos"
)

func seededDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// A single conn keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestListDecodesGenres(t *testing.T) {
	r := repos.NewBookRepo(seededDB(t))

	books, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 4 {
		t.Fatalf("seed catalog has %d books, want 4", len(books))
	}
	for _, b := range books {
		if len(b.Genres) == 0 {
			t.Errorf("%s: genres not decoded", b.ID)
		}
	}
}

func TestGetBook(t *testing.T) {
	r := repos.NewBookRepo(seededDB(t))

	b, err := r.Get("bk-1984")
	if err != nil {
		t.Fatal(err)
	}
	if b.Title != "1984" || b.AuthorName != "George Orwell" {
		t.Fatalf("unexpected book: %+v", b)
	}
	if b.Price.String() != "12.5" {
		t.Fatalf("price = %s", b.Price)
	}

	if _, err := r.Get("bk-missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("missing id: got %v", err)
	}
}

func TestByGenre(t *testing.T) {
	r := repos.NewBookRepo(seededDB(t))

	classics, err := r.ByGenre("Classics")
	if err != nil {
		t.Fatal(err)
	}
	if len(classics) != 3 {
		t.Fatalf("Classics = %d books, want 3", len(classics))
	}
	fantasy, err := r.ByGenre("Fantasy")
	if err != nil {
		t.Fatal(err)
	}
	if len(fantasy) != 1 || fantasy[0].ID != "bk-hobbit" {
		t.Fatalf("Fantasy = %+v", fantasy)
	}
}

func TestSearchMatchesTitleAndAuthor(t *testing.T) {
	r := repos.NewBookRepo(seededDB(t))

	byAuthor, err := r.Search("orwell")
	if err != nil {
		t.Fatal(err)
	}
	if len(byAuthor) != 2 {
		t.Fatalf("orwell matched %d, want 2", len(byAuthor))
	}
	byTitle, err := r.Search("hobbit")
	if err != nil {
		t.Fatal(err)
	}
	if len(byTitle) != 1 || byTitle[0].ID != "bk-hobbit" {
		t.Fatalf("hobbit matched %+v", byTitle)
	}
	none, err := r.Search("zzzz")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("zzzz matched %d", len(none))
	}
}

func TestAuthorLookup(t *testing.T) {
	r := repos.NewBookRepo(seededDB(t))

	a, err := r.Author("a-austen")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "Jane Austen" {
		t.Fatalf("author = %+v", a)
	}
}
