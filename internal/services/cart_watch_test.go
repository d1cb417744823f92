package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"booknest/internal/services"
)

func recvUpdate(t *testing.T, sub *services.CartSubscription) services.CartUpdate {
	t.Helper()
	select {
	case upd, ok := <-sub.C:
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return upd
	case <-time.After(time.Second):
		t.Fatal("no cart update delivered")
	}
	return services.CartUpdate{}
}

func TestWatchDeliversMutations(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	cart, _ := newCartService(db, true)

	sub := cart.Watch("u-1")
	defer sub.Cancel()

	if err := cart.Add("u-1", "bk-a"); err != nil {
		t.Fatal(err)
	}
	upd := recvUpdate(t, sub)
	if upd.Count != 1 || upd.Items[0].ID != "bk-a" {
		t.Fatalf("after add: %+v", upd)
	}
	if !upd.Total.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("total = %s, want 20", upd.Total)
	}

	if err := cart.Remove("u-1", "bk-a"); err != nil {
		t.Fatal(err)
	}
	upd = recvUpdate(t, sub)
	if upd.Count != 0 {
		t.Fatalf("after remove: %+v", upd)
	}
}

func TestWatchDeliversCheckoutClear(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	if _, err := db.Exec(`UPDATE users SET balance=100.00 WHERE id='u-1'`); err != nil {
		t.Fatal(err)
	}
	cart, w := newCartService(db, true)
	checkout := services.NewCheckoutService(db, w)

	sub := cart.Watch("u-1")
	defer sub.Cancel()

	for _, id := range []string{"bk-a", "bk-b"} {
		if err := cart.Add("u-1", id); err != nil {
			t.Fatal(err)
		}
		recvUpdate(t, sub)
	}

	if _, err := checkout.Checkout("u-1"); err != nil {
		t.Fatal(err)
	}
	upd := recvUpdate(t, sub)
	if upd.Count != 0 {
		t.Fatalf("checkout should clear the streamed cart, got %+v", upd)
	}
}

func TestWatchCancelStopsDelivery(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	cart, _ := newCartService(db, true)

	sub := cart.Watch("u-1")
	sub.Cancel()
	sub.Cancel() // idempotent

	if err := cart.Add("u-1", "bk-a"); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-sub.C; ok {
		t.Fatal("cancelled subscription still receiving")
	}
}

func TestWatchIndependentSubscribers(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	cart, _ := newCartService(db, true)

	a := cart.Watch("u-1")
	defer a.Cancel()
	b := cart.Watch("u-1")

	if err := cart.Add("u-1", "bk-a"); err != nil {
		t.Fatal(err)
	}
	recvUpdate(t, a)
	recvUpdate(t, b)

	b.Cancel()
	if err := cart.Add("u-1", "bk-b"); err != nil {
		t.Fatal(err)
	}
	if upd := recvUpdate(t, a); upd.Count != 2 {
		t.Fatalf("survivor update: %+v", upd)
	}
	if _, ok := <-b.C; ok {
		t.Fatal("cancelled subscriber still receiving")
	}
}

func TestWatcherClose(t *testing.T) {
	db := memdb(t)
	defer db.Close()
	cart, w := newCartService(db, true)

	sub := cart.Watch("u-1")
	w.Close()

	if _, ok := <-sub.C; ok {
		t.Fatal("subscription open after watcher close")
	}
	// Post-close subscriptions come back already closed instead of leaking.
	late := cart.Watch("u-1")
	if _, ok := <-late.C; ok {
		t.Fatal("post-close subscription delivered")
	}
	late.Cancel()
}
