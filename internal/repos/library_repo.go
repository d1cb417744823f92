package repos

import (
	"github.com/jmoiron/sqlx"

	"booknest/internal/domain"
	applog "booknest/internal/log"
)

type LibraryRepo struct{ db *sqlx.DB }

func NewLibraryRepo(db *sqlx.DB) *LibraryRepo { return &LibraryRepo{db: db} }

const libraryCols = `book_id AS id, title, author_id, author_name, author_image_url, description,
  image_url, language, pages, pdf_url, price, rating, genres_json`

func (r *LibraryRepo) Owns(userID, bookID string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM library_items WHERE user_id=? AND book_id=?`, userID, bookID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LibraryRepo) Get(userID, bookID string) (*domain.Book, error) {
	var b domain.Book
	if err := r.db.Get(&b, `SELECT `+libraryCols+` FROM library_items WHERE user_id=? AND book_id=?`, userID, bookID); err != nil {
		return nil, err
	}
	if err := decodeGenres(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns the user's purchased books, skipping undecodable rows the
// same way cart fetches do.
func (r *LibraryRepo) List(userID string) ([]domain.Book, error) {
	rows, err := r.db.Queryx(`SELECT `+libraryCols+` FROM library_items WHERE user_id=? ORDER BY purchased_at, book_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.StructScan(&b); err != nil {
			applog.Error(nil, "library.decode.skip", err, map[string]any{"user": userID})
			continue
		}
		if err := decodeGenres(&b); err != nil {
			applog.Error(nil, "library.decode.skip", err, map[string]any{"user": userID, "book": b.ID})
			continue
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
