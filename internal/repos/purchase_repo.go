package repos

import (
	"github.com/jmoiron/sqlx"

	"unimart/internal/domain"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

func (r *PurchaseRepo) Create(p *domain.Purchase) error {
	_, err := r.db.Exec(`
	  INSERT INTO purchases
	    (id, listing_id, buyer_session, base_price, transaction_fee, discount,
	     coupon_code, total, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,'CONFIRMED',CURRENT_TIMESTAMP)
	`, p.ID, p.ListingID, p.BuyerSession, p.BasePrice, p.TransactionFee,
		p.Discount, p.CouponCode, p.Total)
	return err
}

func (r *PurchaseRepo) Get(id string) (domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.Get(&p, `
	  SELECT id, listing_id, buyer_session, base_price, transaction_fee,
	         discount, coupon_code, total, status, created_at
	  FROM purchases WHERE id = ?
	`, id)
	return p, err
}

func (r *PurchaseRepo) ListBySession(sessionID string) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	err := r.db.Select(&out, `
	  SELECT id, listing_id, buyer_session, base_price, transaction_fee,
	         discount, coupon_code, total, status, created_at
	  FROM purchases
	  WHERE buyer_session = ?
	  ORDER BY datetime(created_at) DESC
	`, sessionID)
	return out, err
}
