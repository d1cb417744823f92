package handlers

import (
	"github.com/jmoiron/sqlx"

	"booknest/internal/config"
	"booknest/internal/repos"
	"booknest/internal/services"
)

type Deps struct {
	AuthHandler     *AuthHandler
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	LibraryHandler  *LibraryHandler
	DownloadHandler *DownloadHandler
	AdminHandler    *AdminHandler

	Auth    *services.AuthService
	Cart    *services.CartService
	Watcher *services.CartWatcher
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	bookRepo := repos.NewBookRepo(db)
	cartRepo := repos.NewCartRepo(db)
	libRepo := repos.NewLibraryRepo(db)
	userRepo := repos.NewUserRepo(db)
	purchRepo := repos.NewPurchaseRepo(db)

	watcher := services.NewCartWatcher(cartRepo)
	authSvc := &services.AuthService{Users: userRepo, Secret: cfg.JWTSecret, TTL: cfg.TokenTTL}
	catalogSvc := services.NewCatalogService(bookRepo)
	cartSvc := services.NewCartService(cartRepo, bookRepo, libRepo, userRepo, watcher, cfg.EnforceOwnedCheck)
	checkoutSvc := services.NewCheckoutService(db, watcher)
	downloader := services.NewDownloader(cfg.DownloadDir)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Svc: checkoutSvc},
		LibraryHandler:  &LibraryHandler{Library: libRepo, Purchases: purchRepo},
		DownloadHandler: &DownloadHandler{Library: libRepo, Downloader: downloader},
		AdminHandler:    &AdminHandler{Purchases: purchRepo, Users: userRepo},

		Auth:    authSvc,
		Cart:    cartSvc,
		Watcher: watcher,
	}
}
