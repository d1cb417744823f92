package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"booknest/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, email, name, surname, COALESCE(image_url,'') AS image_url, password_hash, role, balance`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,email,name,surname,image_url,password_hash,role,balance)
		VALUES(?,?,?,?,?,?,?,?)`,
		u.ID, u.Email, u.Name, u.Surname, u.ImageURL, u.Hash, u.Role, u.Balance)
	return err
}

func (r *UserRepo) Balance(id string) (decimal.Decimal, error) {
	var d decimal.Decimal
	err := r.DB.Get(&d, `SELECT balance FROM users WHERE id=?`, id)
	return d, err
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY email`)
	return out, err
}
