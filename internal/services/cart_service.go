package services

import (
	"github.com/shopspring/decimal"

	"booknest/internal/domain"
	"booknest/internal/repos"
)

type CartService struct {
	Carts   *repos.CartRepo
	Books   *repos.BookRepo
	Library *repos.LibraryRepo
	Users   *repos.UserRepo
	Watcher *CartWatcher

	// EnforceOwnedCheck rejects adding a book the user already purchased.
	// Off reproduces the permissive variant that only checks for duplicates.
	EnforceOwnedCheck bool
}

func NewCartService(carts *repos.CartRepo, books *repos.BookRepo, lib *repos.LibraryRepo,
	users *repos.UserRepo, w *CartWatcher, enforceOwned bool) *CartService {
	return &CartService{
		Carts:             carts,
		Books:             books,
		Library:           lib,
		Users:             users,
		Watcher:           w,
		EnforceOwnedCheck: enforceOwned,
	}
}

// Add stages a full snapshot of the book in the user's cart. At most one
// entry per (user, book) exists; a second add reports ErrDuplicateItem and
// performs no write.
func (s *CartService) Add(userID, bookID string) error {
	has, err := s.Carts.Has(userID, bookID)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicateItem
	}
	if s.EnforceOwnedCheck {
		owned, err := s.Library.Owns(userID, bookID)
		if err != nil {
			return err
		}
		if owned {
			return ErrAlreadyOwned
		}
	}
	b, err := s.Books.Get(bookID)
	if err != nil {
		return err
	}
	if err := s.Carts.Insert(userID, *b); err != nil {
		return err
	}
	s.Watcher.Notify(userID)
	return nil
}

// Remove reports success whether or not the book was in the cart.
func (s *CartService) Remove(userID, bookID string) error {
	if err := s.Carts.Delete(userID, bookID); err != nil {
		return err
	}
	s.Watcher.Notify(userID)
	return nil
}

type CartView struct {
	Items   []domain.Book   `json:"items"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Balance decimal.Decimal `json:"balance"`
}

// View returns the cart lines with their total and a point-in-time balance
// read. The balance is not kept live anywhere; checkout re-reads it.
func (s *CartService) View(userID string) (CartView, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return CartView{}, err
	}
	bal, err := s.Users.Balance(userID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for _, b := range lines {
		total = total.Add(b.Price)
	}
	return CartView{Items: lines, Count: len(lines), Total: total, Balance: bal}, nil
}

// Watch subscribes to live cart refreshes for the user. The caller owns the
// returned handle and must Cancel it; see CartWatcher.
func (s *CartService) Watch(userID string) *CartSubscription {
	return s.Watcher.Subscribe(userID)
}
