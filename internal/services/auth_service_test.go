package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"booknest/internal/repos"
	"booknest/internal/services"
)

func memAuth(t *testing.T) (*services.AuthService, func()) {
	db := memdb(t)
	svc := &services.AuthService{
		Users:  repos.NewUserRepo(db),
		Secret: "test-secret",
		TTL:    time.Hour,
	}
	return svc, func() { db.Close() }
}

func TestSignUpSeedsBalance(t *testing.T) {
	svc, done := memAuth(t)
	defer done()

	u, err := svc.SignUp("reader@booknest.test", "Rae", "Reader", "Passw0rd!")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !u.Balance.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("signup balance = %s, want 1000.00", u.Balance)
	}

	stored, err := svc.Users.ByEmail("reader@booknest.test")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Role != "USER" {
		t.Fatalf("role = %s", stored.Role)
	}
	if stored.Hash == "Passw0rd!" || stored.Hash == "" {
		t.Fatal("password stored unhashed")
	}
}

func TestLoginAndVerify(t *testing.T) {
	svc, done := memAuth(t)
	defer done()

	if _, err := svc.SignUp("reader@booknest.test", "Rae", "Reader", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	tok, u, err := svc.Login("reader@booknest.test", "Passw0rd!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok == "" {
		t.Fatal("empty token")
	}

	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("verify resolved %s, want %s", got.ID, u.ID)
	}
}

func TestLoginBadCreds(t *testing.T) {
	svc, done := memAuth(t)
	defer done()

	if _, err := svc.SignUp("reader@booknest.test", "Rae", "Reader", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login("reader@booknest.test", "wrong-password"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("wrong password: want ErrBadCreds, got %v", err)
	}
	if _, _, err := svc.Login("nobody@booknest.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown email: want ErrBadCreds, got %v", err)
	}
}

func TestVerifyRejectsGarbageAndExpired(t *testing.T) {
	svc, done := memAuth(t)
	defer done()

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, services.ErrNotAuthenticated) {
		t.Fatalf("garbage token: got %v", err)
	}

	u, err := svc.SignUp("reader@booknest.test", "Rae", "Reader", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	expired, err := services.GenerateToken(svc.Secret, u.ID, u.Role, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(expired); !errors.Is(err, services.ErrNotAuthenticated) {
		t.Fatalf("expired token: got %v", err)
	}
}
