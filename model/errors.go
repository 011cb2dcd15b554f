package model

import "errors"

// Domain errors surfaced by the coupon lifecycle. Handlers map these to
// HTTP statuses; the distinction matters to operators (operator error vs
// fraud attempt vs infrastructure fault).
var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrAlreadySold    = errors.New("coupon already sold")
	ErrCouponExpired  = errors.New("coupon expired")
	ErrTokenTampered  = errors.New("redemption token integrity check failed")
)
