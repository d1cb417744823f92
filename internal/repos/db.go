package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if DB is empty (authors/books)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Authors
CREATE TABLE IF NOT EXISTS authors(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  bio TEXT,
  image_url TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Catalog
CREATE TABLE IF NOT EXISTS books(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author_id TEXT NOT NULL REFERENCES authors(id) ON DELETE RESTRICT,
  author_name TEXT NOT NULL,
  author_image_url TEXT,
  description TEXT,
  image_url TEXT,
  language TEXT,
  pages INTEGER NOT NULL DEFAULT 0,
  pdf_url TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  rating REAL NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  genres_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_books_title  ON books(LOWER(title));
CREATE INDEX IF NOT EXISTS idx_books_author ON books(author_id);

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  surname TEXT,
  image_url TEXT,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  balance NUMERIC NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Per-user cart: one full book snapshot per staged title
CREATE TABLE IF NOT EXISTS cart_items(
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  book_id TEXT NOT NULL,
  title TEXT NOT NULL,
  author_id TEXT,
  author_name TEXT,
  author_image_url TEXT,
  description TEXT,
  image_url TEXT,
  language TEXT,
  pages INTEGER NOT NULL DEFAULT 0,
  pdf_url TEXT,
  price NUMERIC NOT NULL,
  rating REAL NOT NULL DEFAULT 0,
  genres_json TEXT,
  added_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, book_id)
);

-- Per-user purchased library: written only by checkout, never mutated
CREATE TABLE IF NOT EXISTS library_items(
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  book_id TEXT NOT NULL,
  title TEXT NOT NULL,
  author_id TEXT,
  author_name TEXT,
  author_image_url TEXT,
  description TEXT,
  image_url TEXT,
  language TEXT,
  pages INTEGER NOT NULL DEFAULT 0,
  pdf_url TEXT,
  price NUMERIC NOT NULL,
  rating REAL NOT NULL DEFAULT 0,
  genres_json TEXT,
  purchase_id TEXT,
  purchased_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, book_id)
);

-- Purchase receipts
CREATE TABLE IF NOT EXISTS purchases(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  total NUMERIC NOT NULL,
  item_count INTEGER NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM books`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo authors/books")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO authors(id,name,bio,image_url) VALUES
	  ('a-orwell','George Orwell','Novelist and essayist.','authors/a-orwell.jpg'),
	  ('a-austen','Jane Austen','English novelist of manners.','authors/a-austen.jpg'),
	  ('a-tolkien','J.R.R. Tolkien','Philologist and fantasy author.','authors/a-tolkien.jpg')`)

	tx.MustExec(`INSERT INTO books(id,title,author_id,author_name,author_image_url,description,image_url,language,pages,pdf_url,price,rating,genres_json) VALUES
	  ('bk-1984','1984','a-orwell','George Orwell','authors/a-orwell.jpg','Dystopian classic.','covers/bk-1984.jpg','English',328,'https://assets.booknest.test/pdfs/1984.pdf',12.50,4.7,'["Dystopia","Classics"]'),
	  ('bk-animal-farm','Animal Farm','a-orwell','George Orwell','authors/a-orwell.jpg','A farm is taken over by its animals.','covers/bk-animal-farm.jpg','English',112,'https://assets.booknest.test/pdfs/animal-farm.pdf',8.00,4.5,'["Satire","Classics"]'),
	  ('bk-emma','Emma','a-austen','Jane Austen','authors/a-austen.jpg','A comedy of manners.','covers/bk-emma.jpg','English',474,'https://assets.booknest.test/pdfs/emma.pdf',9.99,4.2,'["Romance","Classics"]'),
	  ('bk-hobbit','The Hobbit','a-tolkien','J.R.R. Tolkien','authors/a-tolkien.jpg','There and back again.','covers/bk-hobbit.jpg','English',310,'https://assets.booknest.test/pdfs/hobbit.pdf',14.90,4.8,'["Fantasy"]')`)

	return tx.Commit()
}

// seedUsers ensures one USER and one ADMIN exist (idempotent). New accounts
// start with the standard 1000.00 signup balance.
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Surname, Role, Hash string
	}
	mk := func(id, email, name, surname, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Surname: surname, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice@booknest.test", "Alice", "Reader", "USER", "Passw0rd!"),
		mk("u-admin", "admin@booknest.test", "Admin", "", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,surname,password_hash,role,balance)
			VALUES(?,?,?,?,?,?,1000.00)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Surname, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
