package constants

// Account roles
const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_EXECUTIVE = "EXECUTIVE"
)

// Coupon status
const (
	CouponIssued  = "ISSUED"
	CouponSold    = "SOLD"
	CouponExpired = "EXPIRED"
)

// Booking status
const (
	BookingInitiated = "INITIATED"
	BookingSuccess   = "SUCCESS"
	BookingFailure   = "FAILURE"
)

// Coupon code format: prefix + CouponCodeLength random base-36 chars.
const (
	CouponCodePrefix = "TF"
	CouponCodeLength = 8
	CouponCodeRetry  = 5
)

// Buyer input widths. Gateway/bank formats, kept configurable here
// rather than baked into validator tags.
const (
	BuyerPhoneDigits = 10
	BankRefDigits    = 5
)

// Seat classes
const (
	SeatStandard = "STANDARD"
	SeatLuxury   = "LUXURY"
)

// Response message keys
const (
	ERROR_INPUT              = "INVALID_INPUT"
	ERROR_INTERNAL_ERROR     = "INTERNAL_ERROR"
	MISSING_LOGIN_INPUT      = "MISSING_LOGIN_INPUT"
	INVALID_USERNAME         = "INVALID_USERNAME"
	INVALID_PASSWORD         = "INVALID_PASSWORD"
	ACCOUNT_NOT_ACTIVE       = "ACCOUNT_NOT_ACTIVE"
	NOT_ADMIN                = "NOT_ADMIN"
	NOT_ALLOWED              = "NOT_ALLOWED"
	DATA_INPUT_IS_NOT_NUMBER = "DATA_INPUT_IS_NOT_NUMBER"

	COUPON_NOT_FOUND     = "COUPON_NOT_FOUND"
	COUPON_ALREADY_SOLD  = "COUPON_ALREADY_SOLD"
	COUPON_EXPIRED       = "COUPON_EXPIRED"
	COUPON_TAMPERED      = "COUPON_TAMPERED"
	EXECUTIVE_NOT_FOUND  = "EXECUTIVE_NOT_FOUND"
	BOOKING_NOT_FOUND    = "BOOKING_NOT_FOUND"
	PAYMENT_GATEWAY_FAIL = "PAYMENT_GATEWAY_FAIL"
)
