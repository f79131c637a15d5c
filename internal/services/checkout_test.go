package services_test

import (
	"errors"
	"testing"

	"unimart/internal/domain"
	"unimart/internal/repos"
	"unimart/internal/services"
)

func TestQuoteMath(t *testing.T) {
	q := services.Quote(150, 5, 20)
	want := domain.CheckoutQuote{BasePrice: 150, TransactionFee: 5, Discount: 20, Total: 135.00}
	if q != want {
		t.Fatalf("quote=%+v want %+v", q, want)
	}
}

func TestQuoteNeverNegative(t *testing.T) {
	if got := services.Quote(100, 5, 1000).Total; got != 0 {
		t.Fatalf("total=%v want 0", got)
	}
}

func TestQuoteNegativeFeeClamped(t *testing.T) {
	q := services.Quote(100, -7, 0)
	if q.TransactionFee != 0 {
		t.Fatalf("fee=%v want 0", q.TransactionFee)
	}
	if q.Total != 100 {
		t.Fatalf("total=%v want 100", q.Total)
	}
}

func TestQuoteMonotonicInDiscount(t *testing.T) {
	prev := services.Quote(150, 5, 0).Total
	for d := 5.0; d <= 200; d += 5 {
		cur := services.Quote(150, 5, d).Total
		if cur > prev {
			t.Fatalf("total increased with discount %v: %v > %v", d, cur, prev)
		}
		if cur < 0 {
			t.Fatalf("negative total %v at discount %v", cur, d)
		}
		prev = cur
	}
}

func TestQuoteRounding(t *testing.T) {
	if got := services.Quote(0.1, 0.2, 0).Total; got != 0.3 {
		t.Fatalf("total=%v want 0.3", got)
	}
}

func TestResolveCoupon(t *testing.T) {
	table := domain.CouponTable{"SAVE10": 20}

	if amount, err := services.ResolveCoupon("SAVE10", table); err != nil || amount != 20 {
		t.Fatalf("exact: %v %v", amount, err)
	}
	if amount, err := services.ResolveCoupon("save10", table); err != nil || amount != 20 {
		t.Fatalf("lower-cased input: %v %v", amount, err)
	}
	lower := domain.CouponTable{"save10": 20}
	if amount, err := services.ResolveCoupon("SAVE10", lower); err != nil || amount != 20 {
		t.Fatalf("upper-cased input: %v %v", amount, err)
	}

	if _, err := services.ResolveCoupon("", table); !errors.Is(err, services.ErrCouponNotFound) {
		t.Fatalf("blank code: %v", err)
	}
	if _, err := services.ResolveCoupon("   ", table); !errors.Is(err, services.ErrCouponNotFound) {
		t.Fatalf("whitespace code: %v", err)
	}
	if _, err := services.ResolveCoupon("NOPE", table); !errors.Is(err, services.ErrCouponNotFound) {
		t.Fatalf("miss: %v", err)
	}
}

func newCheckoutService(t *testing.T) (*services.CheckoutService, *repos.ListingRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	listingRepo := repos.NewListingRepo(db)
	svc := services.NewCheckoutService(listingRepo, repos.NewCouponRepo(db), repos.NewPurchaseRepo(db), 5)
	return svc, listingRepo
}

func TestCheckoutSessionStateMachine(t *testing.T) {
	svc, _ := newCheckoutService(t)

	cs, err := svc.Begin("lst-pe-shirt")
	if err != nil {
		t.Fatal(err)
	}
	if cs.State() != services.StateIdle {
		t.Fatalf("state=%s", cs.State())
	}

	// Seeded coupon SAVE10 is worth 20.
	q, err := cs.ApplyCoupon("save10")
	if err != nil {
		t.Fatal(err)
	}
	if cs.State() != services.StateCouponApplied {
		t.Fatalf("state=%s", cs.State())
	}
	if q.Total != 135.00 {
		t.Fatalf("total=%v want 135", q.Total)
	}

	// Rejection is re-enterable and resets the discount.
	q, err = cs.ApplyCoupon("BOGUS")
	if !errors.Is(err, services.ErrCouponNotFound) {
		t.Fatalf("err=%v", err)
	}
	if cs.State() != services.StateCouponRejected {
		t.Fatalf("state=%s", cs.State())
	}
	if q.Discount != 0 || q.Total != 155.00 {
		t.Fatalf("rejected quote=%+v", q)
	}

	// Re-submit a valid code after rejection.
	if _, err := cs.ApplyCoupon("SAVE10"); err != nil {
		t.Fatal(err)
	}
	if cs.State() != services.StateCouponApplied {
		t.Fatalf("state=%s", cs.State())
	}
}

func TestCheckoutConfirm(t *testing.T) {
	svc, listings := newCheckoutService(t)

	cs, err := svc.Begin("lst-pe-shirt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cs.ApplyCoupon("SAVE10"); err != nil {
		t.Fatal(err)
	}

	p, err := svc.Confirm(cs, "buyer-session")
	if err != nil {
		t.Fatal(err)
	}
	if cs.State() != services.StateConfirmed {
		t.Fatalf("state=%s", cs.State())
	}
	if p.BasePrice != 150 || p.TransactionFee != 5 || p.Discount != 20 || p.Total != 135.00 {
		t.Fatalf("purchase=%+v", p)
	}
	if p.CouponCode != "SAVE10" {
		t.Fatalf("coupon=%q", p.CouponCode)
	}

	// Stock decremented from the seeded 3.
	qty, err := listings.Qty("lst-pe-shirt")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 2 {
		t.Fatalf("qty=%d want 2", qty)
	}

	// Terminal: neither a second confirm nor another coupon goes through.
	if _, err := svc.Confirm(cs, "buyer-session"); err == nil {
		t.Fatal("confirm after confirm should fail")
	}
	if _, err := cs.ApplyCoupon("SAVE10"); err == nil {
		t.Fatal("coupon after confirm should fail")
	}
}

func TestCheckoutCancel(t *testing.T) {
	svc, _ := newCheckoutService(t)

	cs, err := svc.Begin("lst-uc-vest")
	if err != nil {
		t.Fatal(err)
	}
	cs.Cancel()
	if cs.State() != services.StateCancelled {
		t.Fatalf("state=%s", cs.State())
	}
	if _, err := svc.Confirm(cs, "s"); err == nil {
		t.Fatal("confirm after cancel should fail")
	}
}

func TestCheckoutConfirmSoldOut(t *testing.T) {
	svc, listings := newCheckoutService(t)

	// lst-uc-vest is seeded with quantity 1.
	first, err := svc.Begin("lst-uc-vest")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(first, "s1"); err != nil {
		t.Fatal(err)
	}

	second, err := svc.Begin("lst-uc-vest")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(second, "s2"); err == nil {
		t.Fatal("sold-out confirm should fail")
	}
	if qty, _ := listings.Qty("lst-uc-vest"); qty != 0 {
		t.Fatalf("qty=%d want 0", qty)
	}
}
