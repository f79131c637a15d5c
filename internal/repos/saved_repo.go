package repos

import (
	"github.com/jmoiron/sqlx"

	"unimart/internal/domain"
)

type SavedRepo struct{ db *sqlx.DB }

func NewSavedRepo(db *sqlx.DB) *SavedRepo { return &SavedRepo{db: db} }

func (r *SavedRepo) Add(sessionID, listingID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO saved_items(session_id, listing_id)
	  VALUES(?, ?)
	  ON CONFLICT(session_id, listing_id) DO NOTHING
	`, sessionID, listingID)
	return err
}

func (r *SavedRepo) Remove(sessionID, listingID string) error {
	_, err := r.db.Exec(`
	  DELETE FROM saved_items WHERE session_id = ? AND listing_id = ?
	`, sessionID, listingID)
	return err
}

func (r *SavedRepo) List(sessionID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.Select(&out, `
	  SELECT l.id, l.seller_id, l.title, l.description, l.price, l.image_url,
	         l.support_images_json, l.category, l.size, l.genre, l.quantity, l.created_at
	  FROM saved_items s
	  JOIN listings l ON l.id = s.listing_id
	  WHERE s.session_id = ?
	  ORDER BY datetime(s.created_at) DESC
	`, sessionID)
	return out, err
}
