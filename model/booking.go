package model

import "time"

// Booking is the pending record behind a payment-gateway handoff.
// Status: INITIATED -> SUCCESS | FAILURE. Terminal states never change.
type Booking struct {
	DTO
	TransactionId string     `gorm:"size:40;uniqueIndex;not null" json:"transactionId"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	MovieName     string     `json:"movieName"`
	TheatreName   string     `json:"theatreName"`
	ShowTime      string     `json:"showTime"`
	SeatCount     int        `json:"seatCount"`
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        string     `gorm:"not null;default:'INITIATED'" json:"status"`
	GatewayCode   string     `json:"gatewayCode"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

type CreateBookingInput struct {
	CustomerName  string  `json:"customerName" validate:"required,min=1"`
	CustomerEmail string  `json:"customerEmail" validate:"omitempty,email"`
	MovieName     string  `json:"movieName" validate:"required"`
	TheatreName   string  `json:"theatreName" validate:"required"`
	ShowTime      string  `json:"showTime" validate:"required"`
	SeatCount     int     `json:"seatCount" validate:"required,gt=0,lte=10"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}
