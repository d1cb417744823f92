package repos

import (
	"github.com/jmoiron/sqlx"

	"booknest/internal/domain"
	applog "booknest/internal/log"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `book_id AS id, title, author_id, author_name, author_image_url, description,
  image_url, language, pages, pdf_url, price, rating, genres_json`

func (r *CartRepo) Has(userID, bookID string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE user_id=? AND book_id=?`, userID, bookID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CartRepo) Insert(userID string, b domain.Book) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(user_id, book_id, title, author_id, author_name, author_image_url,
		  description, image_url, language, pages, pdf_url, price, rating, genres_json)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		userID, b.ID, b.Title, b.AuthorID, b.AuthorName, b.AuthorImageURL,
		b.Description, b.ImageURL, b.Language, b.Pages, b.PDFURL, b.Price, b.Rating, b.GenresJSON)
	return err
}

// Delete is idempotent: removing a book that is not in the cart succeeds.
func (r *CartRepo) Delete(userID, bookID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id=? AND book_id=?`, userID, bookID)
	return err
}

// Lines returns the user's cart snapshots. Rows that fail to decode are
// skipped and logged rather than failing the whole fetch.
func (r *CartRepo) Lines(userID string) ([]domain.Book, error) {
	rows, err := r.db.Queryx(`SELECT `+cartCols+` FROM cart_items WHERE user_id=? ORDER BY added_at, book_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.StructScan(&b); err != nil {
			applog.Error(nil, "cart.decode.skip", err, map[string]any{"user": userID})
			continue
		}
		if err := decodeGenres(&b); err != nil {
			applog.Error(nil, "cart.decode.skip", err, map[string]any{"user": userID, "book": b.ID})
			continue
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
