package domain

import "github.com/shopspring/decimal"

type Author struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Bio      string `db:"bio" json:"bio"`
	ImageURL string `db:"image_url" json:"imageUrl"`
}

// Book is a catalog record. Cart and library rows carry the same columns:
// adding to cart or purchasing copies a full snapshot of the book, so later
// catalog edits never change what a user staged or bought.
type Book struct {
	ID             string          `db:"id" json:"id"`
	Title          string          `db:"title" json:"title"`
	AuthorID       string          `db:"author_id" json:"authorId"`
	AuthorName     string          `db:"author_name" json:"authorName"`
	AuthorImageURL string          `db:"author_image_url" json:"authorImageUrl"`
	Description    string          `db:"description" json:"description"`
	ImageURL       string          `db:"image_url" json:"imageUrl"`
	Language       string          `db:"language" json:"language"`
	Pages          int             `db:"pages" json:"pages"`
	PDFURL         string          `db:"pdf_url" json:"pdfUrl"`
	Price          decimal.Decimal `db:"price" json:"price"`
	Rating         float64         `db:"rating" json:"rating"`
	GenresJSON     string          `db:"genres_json" json:"-"`
	Genres         []string        `db:"-" json:"genres"`
}

// Purchase is the receipt row written by a successful checkout.
type Purchase struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"userId"`
	Total     decimal.Decimal `db:"total" json:"total"`
	ItemCount int             `db:"item_count" json:"itemCount"`
	CreatedAt string          `db:"created_at" json:"createdAt"`
}
