package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"unimart/internal/domain"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `
  id, seller_id, title, description, price, image_url, support_images_json,
  category, size, genre, quantity, created_at`

// Create inserts a new listing. The insert is idempotent on the listing
// id so a retried publish with the same client-generated draft id does
// not produce a duplicate row.
func (r *ListingRepo) Create(l *domain.Listing) error {
	if l.SupportImagesJSON == "" {
		l.SupportImagesJSON = "[]"
	}
	_, err := r.db.Exec(`
	  INSERT INTO listings
	    (id, seller_id, title, description, price, image_url, support_images_json,
	     category, size, genre, quantity, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO NOTHING
	`, l.ID, l.SellerID, l.Title, l.Description, l.Price, l.ImageURL,
		l.SupportImagesJSON, l.Category, l.Size, l.Genre, l.Quantity)
	return err
}

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id)
	return l, err
}

// BySeller returns the seller's full posted-items subtree, newest first.
// Feed subscribers receive exactly this snapshot after each write.
func (r *ListingRepo) BySeller(sellerID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.Select(&out, `
	  SELECT `+listingCols+` FROM listings
	  WHERE seller_id = ?
	  ORDER BY datetime(created_at) DESC, id
	`, sellerID)
	return out, err
}

// ListNewest feeds the product grid: in-stock listings, newest first.
func (r *ListingRepo) ListNewest(limit, offset int) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.Select(&out, `
	  SELECT `+listingCols+` FROM listings
	  WHERE quantity > 0
	  ORDER BY datetime(created_at) DESC, id
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ListingRepo) Search(q, category, size string, limit, offset int) ([]domain.Listing, error) {
	where := `quantity > 0`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	if size != "" {
		where += ` AND size = ?`
		args = append(args, size)
	}

	query := `SELECT ` + listingCols + ` FROM listings WHERE ` + where + `
	  ORDER BY datetime(created_at) DESC, id
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Listing{}
	err := r.db.Select(&out, query, args...)
	return out, err
}

// Qty returns remaining stock for a listing.
func (r *ListingRepo) Qty(id string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT quantity FROM listings WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// DecrementQty atomically subtracts "by" units if enough stock exists.
func (r *ListingRepo) DecrementQty(id string, by int) error {
	res, err := r.db.Exec(`
	  UPDATE listings
	  SET quantity = quantity - ?
	  WHERE id = ? AND quantity >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("listing %s is sold out", id)
	}
	return nil
}
