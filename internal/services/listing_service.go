package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"unimart/internal/classify"
	"unimart/internal/domain"
	"unimart/internal/media"
	"unimart/internal/repos"
)

// ListingService runs the posting pipeline: auth check, classification,
// normalization, media upload, persistence, feed broadcast.
type ListingService struct {
	Auth       *AuthService
	Classifier classify.Classifier
	Uploader   media.Uploader
	Listings   *repos.ListingRepo
	Feed       *ListingFeed
}

func NewListingService(auth *AuthService, cl classify.Classifier, up media.Uploader, repo *repos.ListingRepo, feed *ListingFeed) *ListingService {
	return &ListingService{Auth: auth, Classifier: cl, Uploader: up, Listings: repo, Feed: feed}
}

// Suggest runs classification only, for pre-filling the post form after
// a capture.
func (s *ListingService) Suggest(ctx context.Context, detectedLabel string) (classify.Suggestion, error) {
	return s.Classifier.Classify(ctx, detectedLabel)
}

// Publish creates a listing for the session's user. photo may be nil
// (listing without an image). Cancelling ctx mid-upload abandons the
// publish before anything is written, so no orphan listings appear.
func (s *ListingService) Publish(ctx context.Context, sid string, form ListingForm, photo io.Reader, detectedLabel string) (domain.Listing, error) {
	sellerID, err := s.Auth.CurrentUserID(sid)
	if err != nil {
		return domain.Listing{}, err
	}

	sug, err := s.Classifier.Classify(ctx, detectedLabel)
	if err != nil {
		return domain.Listing{}, err
	}

	imageURL := ""
	if photo != nil {
		imageURL, err = media.WithRetry(s.Uploader).Upload(ctx, photo)
		if err != nil {
			return domain.Listing{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return domain.Listing{}, err
	}

	l := Normalize(form, imageURL, sug)
	l.SellerID = sellerID
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	if err := s.Listings.Create(&l); err != nil {
		return domain.Listing{}, &PersistenceError{Op: "listing.create", Err: err}
	}

	// Re-read for the server-assigned created_at.
	stored, err := s.Listings.Get(l.ID)
	if err != nil {
		return domain.Listing{}, &PersistenceError{Op: "listing.read", Err: err}
	}

	if s.Feed != nil {
		if snapshot, err := s.Listings.BySeller(sellerID); err == nil {
			s.Feed.Broadcast(sellerID, snapshot)
		}
	}
	return stored, nil
}
