package services

import "errors"

// Failure classes surfaced to callers. Handlers map these to HTTP statuses;
// anything else is a store/network error passed through verbatim.
var (
	ErrNotAuthenticated    = errors.New("user not logged in")
	ErrBadCreds            = errors.New("invalid email or password")
	ErrDuplicateItem       = errors.New("this book is already in your cart")
	ErrAlreadyOwned        = errors.New("this book is already in your library")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceUpdate       = errors.New("balance update failed")
	ErrCheckoutCommit      = errors.New("checkout commit failed")
	ErrNotOwned            = errors.New("book is not in your library")
	ErrDownloadBusy        = errors.New("download already in progress")
	ErrDownloadFailed      = errors.New("download failed")
)
