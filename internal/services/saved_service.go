package services

import (
	"unimart/internal/domain"
	"unimart/internal/repos"
)

type SavedService struct {
	Repo *repos.SavedRepo
}

func NewSavedService(r *repos.SavedRepo) *SavedService { return &SavedService{Repo: r} }

func (s *SavedService) Save(sessionID, listingID string) error {
	return s.Repo.Add(sessionID, listingID)
}

func (s *SavedService) Unsave(sessionID, listingID string) error {
	return s.Repo.Remove(sessionID, listingID)
}

func (s *SavedService) List(sessionID string) ([]domain.Listing, error) {
	return s.Repo.List(sessionID)
}
