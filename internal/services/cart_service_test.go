package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"booknest/internal/services"
)

func TestAddRejectsDuplicate(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	svc, _ := newCartService(db, true)

	if err := svc.Add("u-1", "bk-a"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := svc.Add("u-1", "bk-a")
	if !errors.Is(err, services.ErrDuplicateItem) {
		t.Fatalf("want ErrDuplicateItem, got %v", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE user_id='u-1'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("duplicate add wrote a row, cart has %d", n)
	}
}

func TestAddRejectsOwnedBook(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	if _, err := db.Exec(`INSERT INTO library_items(user_id,book_id,title,price,pdf_url,genres_json)
		VALUES('u-1','bk-a','A',20.00,'https://assets.test/a.pdf','["Fiction"]')`); err != nil {
		t.Fatal(err)
	}

	svc, _ := newCartService(db, true)
	if err := svc.Add("u-1", "bk-a"); !errors.Is(err, services.ErrAlreadyOwned) {
		t.Fatalf("want ErrAlreadyOwned, got %v", err)
	}

	// The permissive variant only guards against duplicates.
	loose, _ := newCartService(db, false)
	if err := loose.Add("u-1", "bk-a"); err != nil {
		t.Fatalf("permissive add of owned book: %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	svc, _ := newCartService(db, true)

	if err := svc.Add("u-1", "bk-a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove("u-1", "bk-a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove("u-1", "bk-a"); err != nil {
		t.Fatalf("second remove of absent book: %v", err)
	}
	if err := svc.Remove("u-1", "bk-nope"); err != nil {
		t.Fatalf("remove of unknown book: %v", err)
	}

	view, err := svc.View("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Count != 0 {
		t.Fatalf("cart not empty after removes: %d", view.Count)
	}
}

func TestViewTotalsAndBalance(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	svc, _ := newCartService(db, true)

	for _, id := range []string{"bk-a", "bk-b"} {
		if err := svc.Add("u-1", id); err != nil {
			t.Fatal(err)
		}
	}
	view, err := svc.View("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Count != 2 {
		t.Fatalf("count = %d, want 2", view.Count)
	}
	if !view.Total.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("total = %s, want 60", view.Total)
	}
	if !view.Balance.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("balance = %s, want 50", view.Balance)
	}
}

func TestViewSkipsUndecodableRows(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	svc, _ := newCartService(db, true)

	if err := svc.Add("u-1", "bk-a"); err != nil {
		t.Fatal(err)
	}
	// A row whose price no longer parses must not take the whole cart down.
	if _, err := db.Exec(`INSERT INTO cart_items(user_id,book_id,title,price,pdf_url,genres_json)
		VALUES('u-1','bk-broken','Broken','not-a-number','x','["Fiction"]')`); err != nil {
		t.Fatal(err)
	}

	view, err := svc.View("u-1")
	if err != nil {
		t.Fatalf("view with broken row: %v", err)
	}
	if view.Count != 1 || view.Items[0].ID != "bk-a" {
		t.Fatalf("want only bk-a to survive, got %+v", view.Items)
	}
	if !view.Total.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("total = %s, want 20", view.Total)
	}
}
