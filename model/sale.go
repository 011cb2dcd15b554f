package model

import "time"

// SaleRecord is the immutable audit row written inside the sale
// transaction. Never updated after insert.
type SaleRecord struct {
	DTO
	CouponId   uint      `gorm:"not null;uniqueIndex" json:"couponId"`
	CouponCode string    `gorm:"size:20;not null" json:"couponCode"`
	IssuerCode string    `gorm:"size:10;not null;index" json:"issuerCode"`
	AmountPaid float64   `gorm:"type:decimal(10,2);not null" json:"amountPaid"`
	BuyerName  string    `gorm:"not null" json:"buyerName"`
	BuyerPhone string    `gorm:"not null" json:"buyerPhone"`
	BankRef    string    `gorm:"not null" json:"bankRef"`
	SoldAt     time.Time `gorm:"not null" json:"soldAt"`
	RecordedBy uint      `json:"recordedBy"`

	Coupon Coupon `gorm:"foreignKey:CouponId" json:"-"`
}

type RecordSaleInput struct {
	CouponCode string `json:"couponCode" validate:"required"`
	BuyerName  string `json:"buyerName" validate:"required,min=1"`
	BuyerPhone string `json:"buyerPhone" validate:"required"`
	BankRef    string `json:"bankRef" validate:"required"`
	BuyerEmail string `json:"buyerEmail" validate:"omitempty,email"`
}

// SaleEvent is published on the live feed after a sale commits.
type SaleEvent struct {
	CouponCode string    `json:"couponCode"`
	IssuerCode string    `json:"issuerCode"`
	AmountPaid float64   `json:"amountPaid"`
	SeatClass  string    `json:"seatClass"`
	SoldAt     time.Time `json:"soldAt"`
}
