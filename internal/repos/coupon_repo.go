package repos

import (
	"github.com/jmoiron/sqlx"

	"unimart/internal/domain"
)

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

// Table loads the whole coupon table. Checkout sessions call this once
// on entry and treat the result as read-only.
func (r *CouponRepo) Table() (domain.CouponTable, error) {
	rows := []struct {
		Code     string  `db:"code"`
		Discount float64 `db:"discount"`
	}{}
	if err := r.db.Select(&rows, `SELECT code, discount FROM coupons`); err != nil {
		return nil, err
	}
	t := make(domain.CouponTable, len(rows))
	for _, row := range rows {
		t[row.Code] = row.Discount
	}
	return t, nil
}

func (r *CouponRepo) Upsert(code string, discount float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO coupons(code, discount) VALUES(?, ?)
	  ON CONFLICT(code) DO UPDATE SET discount = excluded.discount
	`, code, discount)
	return err
}
