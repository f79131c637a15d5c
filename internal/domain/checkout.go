package domain

// CouponTable maps coupon codes to flat discount amounts. Loaded once
// per checkout session and treated as read-only after that.
type CouponTable map[string]float64

// CheckoutQuote is derived per request and never stored as-is.
type CheckoutQuote struct {
	BasePrice      float64 `json:"base_price"`
	TransactionFee float64 `json:"transaction_fee"`
	Discount       float64 `json:"discount"`
	Total          float64 `json:"total"`
}

type Purchase struct {
	ID             string  `db:"id"`
	ListingID      string  `db:"listing_id"`
	BuyerSession   string  `db:"buyer_session"`
	BasePrice      float64 `db:"base_price"`
	TransactionFee float64 `db:"transaction_fee"`
	Discount       float64 `db:"discount"`
	CouponCode     string  `db:"coupon_code"`
	Total          float64 `db:"total"`
	Status         string  `db:"status"`
	CreatedAt      string  `db:"created_at"`
}
