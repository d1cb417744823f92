package domain

import "github.com/shopspring/decimal"

type User struct {
	ID       string          `db:"id" json:"id"`
	Email    string          `db:"email" json:"email"`
	Name     string          `db:"name" json:"name"`
	Surname  string          `db:"surname" json:"surname"`
	ImageURL string          `db:"image_url" json:"imageUrl"`
	Hash     string          `db:"password_hash" json:"-"`
	Role     string          `db:"role" json:"role"`
	Balance  decimal.Decimal `db:"balance" json:"balance"`
}
