package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"booknest/internal/repos"
	"booknest/internal/services"
)

// memdb builds the storefront schema with one user (balance 50.00) and two
// catalog books priced 20.00 and 40.00.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// A single conn keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE authors(id TEXT PRIMARY KEY, name TEXT, bio TEXT, image_url TEXT, created_at TEXT);
	CREATE TABLE books(id TEXT PRIMARY KEY, title TEXT, author_id TEXT, author_name TEXT, author_image_url TEXT,
	  description TEXT, image_url TEXT, language TEXT, pages INTEGER, pdf_url TEXT, price NUMERIC, rating REAL,
	  genres_json TEXT, created_at TEXT);
	CREATE TABLE users(id TEXT PRIMARY KEY, email TEXT UNIQUE, name TEXT, surname TEXT, image_url TEXT,
	  password_hash TEXT, role TEXT, balance NUMERIC, created_at TEXT);
	CREATE TABLE cart_items(user_id TEXT, book_id TEXT, title TEXT, author_id TEXT, author_name TEXT,
	  author_image_url TEXT, description TEXT, image_url TEXT, language TEXT, pages INTEGER, pdf_url TEXT,
	  price NUMERIC, rating REAL, genres_json TEXT, added_at TEXT DEFAULT CURRENT_TIMESTAMP,
	  PRIMARY KEY(user_id, book_id));
	CREATE TABLE library_items(user_id TEXT, book_id TEXT, title TEXT, author_id TEXT, author_name TEXT,
	  author_image_url TEXT, description TEXT, image_url TEXT, language TEXT, pages INTEGER, pdf_url TEXT,
	  price NUMERIC, rating REAL, genres_json TEXT, purchase_id TEXT, purchased_at TEXT DEFAULT CURRENT_TIMESTAMP,
	  PRIMARY KEY(user_id, book_id));
	CREATE TABLE purchases(id TEXT PRIMARY KEY, user_id TEXT, total NUMERIC, item_count INTEGER,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);

	INSERT INTO users(id,email,name,surname,password_hash,role,balance) VALUES
	  ('u-1','tess@booknest.test','Tess','Tester','x','USER',50.00);
	INSERT INTO authors(id,name,bio) VALUES ('au-1','Author One','bio');
	INSERT INTO books(id,title,author_id,author_name,description,language,pages,pdf_url,price,rating,genres_json) VALUES
	  ('bk-a','A','au-1','Author One','first','English',100,'https://assets.test/a.pdf',20.00,4.0,'["Fiction"]'),
	  ('bk-b','B','au-1','Author One','second','English',200,'https://assets.test/b.pdf',40.00,4.5,'["Fiction"]');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartService(db *sqlx.DB, enforceOwned bool) (*services.CartService, *services.CartWatcher) {
	cartRepo := repos.NewCartRepo(db)
	w := services.NewCartWatcher(cartRepo)
	svc := services.NewCartService(cartRepo, repos.NewBookRepo(db), repos.NewLibraryRepo(db),
		repos.NewUserRepo(db), w, enforceOwned)
	return svc, w
}
