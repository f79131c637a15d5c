package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"unimart/internal/domain"
	"unimart/internal/repos"
)

// Quote computes the checkout total. A negative configured fee counts as
// 0; the discount can zero the total but never push it negative. The
// total is rounded to 2 decimal places for display.
func Quote(basePrice, transactionFee, discount float64) domain.CheckoutQuote {
	fee := math.Max(0, transactionFee)
	total := math.Max(0, basePrice+fee-discount)
	return domain.CheckoutQuote{
		BasePrice:      basePrice,
		TransactionFee: fee,
		Discount:       discount,
		Total:          math.Round(total*100) / 100,
	}
}

// ResolveCoupon looks a code up against the table: exact match first,
// then upper-cased, then lower-cased. Blank or whitespace-only codes
// miss immediately without touching the table. A miss means "apply zero
// discount", not a fatal error.
func ResolveCoupon(code string, table domain.CouponTable) (float64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, ErrCouponNotFound
	}
	for _, candidate := range []string{code, strings.ToUpper(code), strings.ToLower(code)} {
		if amount, ok := table[candidate]; ok {
			return amount, nil
		}
	}
	return 0, ErrCouponNotFound
}

type CheckoutState string

const (
	StateIdle           CheckoutState = "IDLE"
	StateCouponApplied  CheckoutState = "COUPON_APPLIED"
	StateCouponRejected CheckoutState = "COUPON_REJECTED"
	StateConfirmed      CheckoutState = "CONFIRMED"
	StateCancelled      CheckoutState = "CANCELLED"
)

// CheckoutSession tracks one buyer working through a single listing's
// checkout. Coupons can be re-submitted any number of times until the
// session is confirmed or cancelled.
type CheckoutSession struct {
	Listing domain.Listing

	fee     float64
	coupons domain.CouponTable

	state    CheckoutState
	discount float64
	code     string
}

func (cs *CheckoutSession) State() CheckoutState { return cs.state }

// ApplyCoupon re-enters CouponApplied or CouponRejected depending on the
// lookup. A miss resets the discount to zero.
func (cs *CheckoutSession) ApplyCoupon(code string) (domain.CheckoutQuote, error) {
	if cs.state == StateConfirmed || cs.state == StateCancelled {
		return domain.CheckoutQuote{}, fmt.Errorf("checkout already %s", strings.ToLower(string(cs.state)))
	}
	amount, err := ResolveCoupon(code, cs.coupons)
	if err != nil {
		cs.state = StateCouponRejected
		cs.discount = 0
		cs.code = ""
		return cs.CurrentQuote(), err
	}
	cs.state = StateCouponApplied
	cs.discount = amount
	cs.code = strings.TrimSpace(code)
	return cs.CurrentQuote(), nil
}

func (cs *CheckoutSession) CurrentQuote() domain.CheckoutQuote {
	return Quote(cs.Listing.Price, cs.fee, cs.discount)
}

func (cs *CheckoutSession) Cancel() {
	if cs.state != StateConfirmed {
		cs.state = StateCancelled
	}
}

type CheckoutService struct {
	Listings  *repos.ListingRepo
	Coupons   *repos.CouponRepo
	Purchases *repos.PurchaseRepo
	Fee       float64
}

func NewCheckoutService(listings *repos.ListingRepo, coupons *repos.CouponRepo, purchases *repos.PurchaseRepo, fee float64) *CheckoutService {
	return &CheckoutService{Listings: listings, Coupons: coupons, Purchases: purchases, Fee: fee}
}

// Begin loads the listing and the coupon table once; the session never
// re-reads either.
func (s *CheckoutService) Begin(listingID string) (*CheckoutSession, error) {
	l, err := s.Listings.Get(listingID)
	if err != nil {
		return nil, err
	}
	table, err := s.Coupons.Table()
	if err != nil {
		return nil, &PersistenceError{Op: "coupons.load", Err: err}
	}
	return &CheckoutSession{Listing: l, fee: s.Fee, coupons: table, state: StateIdle}, nil
}

// Confirm finalizes the session: decrements stock, records the purchase
// and moves the session to its terminal state.
func (s *CheckoutService) Confirm(cs *CheckoutSession, buyerSID string) (domain.Purchase, error) {
	if cs.state == StateConfirmed || cs.state == StateCancelled {
		return domain.Purchase{}, fmt.Errorf("checkout already %s", strings.ToLower(string(cs.state)))
	}
	if err := s.Listings.DecrementQty(cs.Listing.ID, 1); err != nil {
		return domain.Purchase{}, err
	}

	q := cs.CurrentQuote()
	p := domain.Purchase{
		ID:             uuid.NewString(),
		ListingID:      cs.Listing.ID,
		BuyerSession:   buyerSID,
		BasePrice:      q.BasePrice,
		TransactionFee: q.TransactionFee,
		Discount:       q.Discount,
		CouponCode:     cs.code,
		Total:          q.Total,
	}
	if err := s.Purchases.Create(&p); err != nil {
		return domain.Purchase{}, &PersistenceError{Op: "purchase.create", Err: err}
	}
	cs.state = StateConfirmed
	return p, nil
}
