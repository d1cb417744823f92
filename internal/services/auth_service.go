package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"booknest/internal/domain"
	"booknest/internal/repos"
)

// Every new account starts with the standard signup credit.
var signupBalance = decimal.RequireFromString("1000.00")

type AuthService struct {
	Users  *repos.UserRepo
	Secret string
	TTL    time.Duration
}

func (s *AuthService) SignUp(email, name, surname, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:      uuid.NewString(),
		Email:   email,
		Name:    name,
		Surname: surname,
		Hash:    string(hash),
		Role:    "USER",
		Balance: signupBalance,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	tok, err := GenerateToken(s.Secret, u.ID, u.Role, s.TTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Verify resolves the user behind a bearer token. The identity is resolved
// per call, never cached across requests.
func (s *AuthService) Verify(token string) (*domain.User, error) {
	claims, err := ParseToken(s.Secret, token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	u, err := s.Users.ByID(claims.Sub)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}
