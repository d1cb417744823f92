package repos

import (
	"encoding/json"

	"booknest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BookRepo struct{ db *sqlx.DB }

func NewBookRepo(db *sqlx.DB) *BookRepo { return &BookRepo{db: db} }

const bookCols = `id, title, author_id, author_name, author_image_url, description,
  image_url, language, pages, pdf_url, price, rating, genres_json`

// decodeGenres expands the stored JSON tag list onto the struct.
func decodeGenres(b *domain.Book) error {
	b.Genres = nil
	if b.GenresJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(b.GenresJSON), &b.Genres)
}

func (r *BookRepo) List() ([]domain.Book, error) {
	var out []domain.Book
	if err := r.db.Select(&out, `SELECT `+bookCols+` FROM books ORDER BY title`); err != nil {
		return nil, err
	}
	for i := range out {
		if err := decodeGenres(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *BookRepo) Get(id string) (*domain.Book, error) {
	var b domain.Book
	if err := r.db.Get(&b, `SELECT `+bookCols+` FROM books WHERE id=?`, id); err != nil {
		return nil, err
	}
	if err := decodeGenres(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ByGenre filters on the stored tag list. Tags are short and the catalog is
// small, so a LIKE over the JSON text is enough here.
func (r *BookRepo) ByGenre(genre string) ([]domain.Book, error) {
	var out []domain.Book
	err := r.db.Select(&out, `SELECT `+bookCols+` FROM books WHERE genres_json LIKE ? ORDER BY title`,
		`%"`+genre+`"%`)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if err := decodeGenres(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *BookRepo) Search(q string) ([]domain.Book, error) {
	like := "%" + q + "%"
	var out []domain.Book
	err := r.db.Select(&out, `
	  SELECT `+bookCols+` FROM books
	  WHERE LOWER(title) LIKE LOWER(?) OR LOWER(author_name) LIKE LOWER(?)
	  ORDER BY title LIMIT 25`, like, like)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if err := decodeGenres(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *BookRepo) Author(id string) (*domain.Author, error) {
	var a domain.Author
	if err := r.db.Get(&a, `SELECT id, name, bio, image_url FROM authors WHERE id=?`, id); err != nil {
		return nil, err
	}
	return &a, nil
}
