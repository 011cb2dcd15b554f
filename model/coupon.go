package model

import "time"

type Coupon struct {
	DTO
	Code          string     `gorm:"size:20;not null;index" json:"code"`
	AmountPaid    float64    `gorm:"type:decimal(10,2);not null" json:"amountPaid"`
	IssuerCode    string     `gorm:"size:10;not null;index" json:"issuerCode"`
	SeatClass     string     `gorm:"not null;default:'STANDARD'" json:"seatClass"`
	Status        string     `gorm:"not null;default:'ISSUED'" json:"status"`
	QrImageUrl    *string    `json:"qrImageUrl"`
	GeneratedAt   time.Time  `gorm:"not null" json:"generatedAt"`
	ValidUntil    time.Time  `gorm:"not null" json:"validUntil"`
	SaleTimestamp *time.Time `gorm:"default:null" json:"saleTimestamp,omitempty"`
	BuyerName     string     `json:"buyerName,omitempty"`
	BuyerPhone    string     `json:"buyerPhone,omitempty"`

	Sale *SaleRecord `gorm:"foreignKey:CouponId" json:"-"`
}

type Coupons []Coupon

// CouponPublicView is what a scanned redemption token resolves to.
// Never carries buyer data or timestamps beyond validity.
type CouponPublicView struct {
	Code       string    `json:"code"`
	AmountPaid float64   `json:"amountPaid"`
	SeatClass  string    `json:"seatClass"`
	IssuerCode string    `json:"issuerCode"`
	QrImageUrl *string   `json:"qrImageUrl"`
	ValidUntil time.Time `json:"validUntil"`
}

type GenerateCouponInput struct {
	Count      int     `json:"count" validate:"required,gt=0,lte=100"`
	AmountPaid float64 `json:"amountPaid" validate:"required,gte=0"`
	SeatClass  string  `json:"seatClass" validate:"required,oneof=STANDARD LUXURY"`
	ValidDays  int     `json:"validDays" validate:"required,gt=0,lte=365"`
}

type FilterCouponInput struct {
	Pagination
	IssuerCode string     `json:"issuerCode" query:"issuerCode"`
	Status     string     `json:"status" query:"status" validate:"omitempty,oneof=ISSUED SOLD EXPIRED"`
	StartDate  *time.Time `json:"startDate" query:"startDate"`
	EndDate    *time.Time `json:"endDate" query:"endDate"`
}
