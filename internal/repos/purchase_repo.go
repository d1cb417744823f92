package repos

import (
	"github.com/jmoiron/sqlx"

	"booknest/internal/domain"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

func (r *PurchaseRepo) ByUser(userID string) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.Select(&out, `
	  SELECT id, user_id, total, item_count, created_at
	  FROM purchases WHERE user_id=? ORDER BY created_at DESC`, userID)
	return out, err
}

func (r *PurchaseRepo) Recent(limit int) ([]domain.Purchase, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []domain.Purchase
	err := r.db.Select(&out, `
	  SELECT id, user_id, total, item_count, created_at
	  FROM purchases ORDER BY created_at DESC LIMIT ?`, limit)
	return out, err
}
