package validate

import (
	"regexp"
	"strconv"
	"strings"

	"unimart/internal/domain"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ      = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCoupon = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)
)

// Price applies the listing price normalization rule: an empty field is
// "not provided" (false), anything else is an explicit edit (true) and a
// value that fails to parse as a non-negative decimal clamps to 0 rather
// than erroring.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, true
	}
	return v, true
}

// Qty parses a quantity, defaulting malformed or non-positive input to 1.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// Category normalizes a category id against the closed set. The mobile
// client historically sent both "gadget" and "gadgets"; both map to
// gadgets.
func Category(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "gadget" {
		s = domain.CategoryGadgets
	}
	for _, c := range domain.Categories {
		if s == c {
			return s, true
		}
	}
	return "", false
}

func Size(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, v := range domain.Sizes {
		if s == v {
			return s, true
		}
	}
	return "", false
}

func Genre(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range domain.Genres {
		if strings.EqualFold(s, v) {
			return v, true
		}
	}
	return "", false
}

// CouponCode trims and checks the shape only; lookup happens later.
func CouponCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCoupon.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID validates a simple resource identifier (listing/purchase ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 20 {
		return "", false
	}
	return s, true
}

// Password enforces the login complexity window.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
