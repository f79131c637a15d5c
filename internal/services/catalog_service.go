package services

import (
	"database/sql"

	"unimart/internal/domain"
	"unimart/internal/repos"
)

type CatalogService struct {
	Listings *repos.ListingRepo
}

func NewCatalogService(listings *repos.ListingRepo) *CatalogService {
	return &CatalogService{Listings: listings}
}

// Grid returns the newest-first product grid.
func (s *CatalogService) Grid(page, pageSize int) ([]domain.Listing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Listings.ListNewest(pageSize, offset)
}

func (s *CatalogService) Get(id string) (domain.Listing, error) {
	return s.Listings.Get(id)
}

func (s *CatalogService) Search(q, category, size string, page, pageSize int) ([]domain.Listing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Listings.Search(q, category, size, pageSize, offset)
}

// CheckAvailability converts remaining quantity to IN_STOCK / LOW_STOCK
// / OUT_OF_STOCK for the "check product" flow.
func (s *CatalogService) CheckAvailability(listingID string) (domain.Availability, error) {
	qty, err := s.Listings.Qty(listingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}
