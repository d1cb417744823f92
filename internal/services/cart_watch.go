package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"booknest/internal/domain"
	applog "booknest/internal/log"
	"booknest/internal/repos"
)

// CartUpdate is one delivery on a cart subscription: the full refreshed line
// list, never a delta.
type CartUpdate struct {
	Items []domain.Book   `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// CartSubscription is a cancellable handle to a stream of cart refreshes.
// Cancel is idempotent and safe to defer; after Cancel nothing more is
// delivered and C is closed.
type CartSubscription struct {
	C      <-chan CartUpdate
	ch     chan CartUpdate
	cancel func()
	once   sync.Once
}

func (s *CartSubscription) Cancel() {
	s.once.Do(s.cancel)
}

// CartWatcher fans out refreshed cart snapshots to the active subscriptions
// of a user whenever that user's cart is mutated. Every mutation path in
// this process goes through CartService or CheckoutService, both of which
// call Notify, so subscribers see adds, removes and checkout clears
// regardless of which client performed them.
type CartWatcher struct {
	carts *repos.CartRepo

	mu     sync.Mutex
	subs   map[string]map[*CartSubscription]struct{}
	closed bool
}

func NewCartWatcher(carts *repos.CartRepo) *CartWatcher {
	return &CartWatcher{
		carts: carts,
		subs:  map[string]map[*CartSubscription]struct{}{},
	}
}

func (w *CartWatcher) Subscribe(userID string) *CartSubscription {
	sub := &CartSubscription{ch: make(chan CartUpdate, 8)}
	sub.C = sub.ch
	sub.cancel = func() { w.drop(userID, sub) }

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		close(sub.ch)
		sub.cancel = func() {}
		return sub
	}
	set, ok := w.subs[userID]
	if !ok {
		set = map[*CartSubscription]struct{}{}
		w.subs[userID] = set
	}
	set[sub] = struct{}{}
	return sub
}

func (w *CartWatcher) drop(userID string, sub *CartSubscription) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if set, ok := w.subs[userID]; ok {
		if _, live := set[sub]; live {
			delete(set, sub)
			close(sub.ch)
		}
		if len(set) == 0 {
			delete(w.subs, userID)
		}
	}
}

// Notify reloads the user's cart and delivers it to every active handle.
// A subscriber that cannot keep up is dropped, as a hub would drop a slow
// websocket client, rather than blocking the mutation path.
func (w *CartWatcher) Notify(userID string) {
	w.mu.Lock()
	if w.closed || len(w.subs[userID]) == 0 {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	lines, err := w.carts.Lines(userID)
	if err != nil {
		applog.Error(nil, "cart.watch.reload", err, map[string]any{"user": userID})
		return
	}
	total := decimal.Zero
	for _, b := range lines {
		total = total.Add(b.Price)
	}
	update := CartUpdate{Items: lines, Count: len(lines), Total: total}

	w.mu.Lock()
	defer w.mu.Unlock()
	for sub := range w.subs[userID] {
		select {
		case sub.ch <- update:
		default:
			delete(w.subs[userID], sub)
			close(sub.ch)
		}
	}
	if len(w.subs[userID]) == 0 {
		delete(w.subs, userID)
	}
}

// Close tears down every subscription; used on shutdown so no handle leaks.
func (w *CartWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for userID, set := range w.subs {
		for sub := range set {
			close(sub.ch)
		}
		delete(w.subs, userID)
	}
}
