package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuthRequired blocks publishing when no user is bound to the
// session.
var ErrAuthRequired = errors.New("you must be logged in to post")

// ErrCouponNotFound is a lookup miss, not a failure: callers apply zero
// discount and show a non-blocking notice.
var ErrCouponNotFound = errors.New("coupon not found")

// PersistenceError wraps a store write/read failure so handlers can show
// the raw message plus, for permission problems, a more useful hint.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Hint returns a user-facing suggestion. Permission-denied and read-only
// store failures get a distinct hint; everything else surfaces raw.
func (e *PersistenceError) Hint() string {
	msg := strings.ToLower(e.Err.Error())
	if strings.Contains(msg, "permission denied") || strings.Contains(msg, "readonly database") {
		return "The store rejected the write. Check that your account is allowed to post."
	}
	return "Could not save your changes. Please try again."
}
