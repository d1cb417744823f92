package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"booknest/internal/domain"
)

type CheckoutService struct {
	DB      *sqlx.DB
	Watcher *CartWatcher
}

func NewCheckoutService(db *sqlx.DB, w *CartWatcher) *CheckoutService {
	return &CheckoutService{DB: db, Watcher: w}
}

// Receipt is the single terminal outcome of a successful checkout.
type Receipt struct {
	PurchaseID string          `json:"purchaseId"`
	Total      decimal.Decimal `json:"total"`
	Balance    decimal.Decimal `json:"balance"`
	Items      []domain.Book   `json:"items"`
}

// Checkout purchases the current cart snapshot in one transaction: the
// balance check, the balance decrement, the library copies, the cart
// deletions and the receipt all commit or roll back together. A failure
// at any step leaves balance, cart and library untouched.
func (s *CheckoutService) Checkout(userID string) (*Receipt, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Snapshot the cart. Adds or removes racing this transaction are not
	// part of the purchase; they surface on the next cart refresh.
	var items []domain.Book
	if err := tx.Select(&items, `
	  SELECT book_id AS id, title, author_id, author_name, author_image_url, description,
	    image_url, language, pages, pdf_url, price, rating, genres_json
	  FROM cart_items WHERE user_id=? ORDER BY added_at, book_id`, userID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, b := range items {
		total = total.Add(b.Price)
	}

	var balance decimal.Decimal
	if err := tx.Get(&balance, `SELECT balance FROM users WHERE id=?`, userID); err != nil {
		return nil, err
	}
	if balance.LessThan(total) {
		return nil, ErrInsufficientBalance
	}

	newBalance := balance.Sub(total)
	if _, err := tx.Exec(`UPDATE users SET balance=? WHERE id=?`, newBalance, userID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBalanceUpdate, err)
	}

	purchaseID := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO purchases(id,user_id,total,item_count) VALUES(?,?,?,?)`,
		purchaseID, userID, total, len(items)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutCommit, err)
	}

	for _, b := range items {
		// Set semantics: purchasing a book the library already holds
		// refreshes the snapshot instead of failing the whole batch.
		if _, err := tx.Exec(`
			INSERT INTO library_items(user_id, book_id, title, author_id, author_name, author_image_url,
			  description, image_url, language, pages, pdf_url, price, rating, genres_json, purchase_id)
			VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
			ON CONFLICT(user_id, book_id) DO UPDATE SET
			  title=excluded.title, price=excluded.price, pdf_url=excluded.pdf_url,
			  purchase_id=excluded.purchase_id`,
			userID, b.ID, b.Title, b.AuthorID, b.AuthorName, b.AuthorImageURL,
			b.Description, b.ImageURL, b.Language, b.Pages, b.PDFURL, b.Price, b.Rating, b.GenresJSON,
			purchaseID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCheckoutCommit, err)
		}
		if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id=? AND book_id=?`, userID, b.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCheckoutCommit, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutCommit, err)
	}

	s.Watcher.Notify(userID)
	return &Receipt{PurchaseID: purchaseID, Total: total, Balance: newBalance, Items: items}, nil
}
