package handlers

import (
	"github.com/jmoiron/sqlx"

	"unimart/internal/classify"
	"unimart/internal/config"
	"unimart/internal/media"
	"unimart/internal/repos"
	"unimart/internal/services"
)

type Deps struct {
	ListingHandler      *ListingHandler
	SearchHandler       *SearchHandler
	AvailabilityHandler *AvailabilityHandler
	CheckoutHandler     *CheckoutHandler
	SavedHandler        *SavedHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, cl classify.Classifier, up media.Uploader) *Deps {
	listingRepo := repos.NewListingRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	purchaseRepo := repos.NewPurchaseRepo(db)
	savedRepo := repos.NewSavedRepo(db)

	feed := services.NewListingFeed()
	catalogSvc := services.NewCatalogService(listingRepo)
	listingSvc := services.NewListingService(auth, cl, up, listingRepo, feed)
	checkoutSvc := services.NewCheckoutService(listingRepo, couponRepo, purchaseRepo, cfg.TransactionFee)
	savedSvc := services.NewSavedService(savedRepo)

	return &Deps{
		ListingHandler:      &ListingHandler{Catalog: catalogSvc, Pub: listingSvc},
		SearchHandler:       &SearchHandler{Catalog: catalogSvc},
		AvailabilityHandler: &AvailabilityHandler{Catalog: catalogSvc},
		CheckoutHandler:     &CheckoutHandler{Checkout: checkoutSvc},
		SavedHandler:        &SavedHandler{Saved: savedSvc},
	}
}
