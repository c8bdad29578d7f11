package models

import "time"

// PaymentStatus is the state of a payment row
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Code   string `json:"code" gorm:"uniqueIndex;size:20"`
	Name   string `json:"name"`
	Active bool   `json:"active" gorm:"default:true"`
}

// DefaultPaymentMethods are seeded on first start
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: 1, Code: "cash", Name: "Cash", Active: true},
		{ID: 2, Code: "card", Name: "Credit/Debit card", Active: true},
		{ID: 3, Code: "transfer", Name: "Bank transfer", Active: true},
	}
}

// Payment amounts are signed: refunds are stored as negative rows
type Payment struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	ReservationID uint           `json:"reservationId" gorm:"index"`
	MethodID      uint           `json:"methodId"`
	Method        *PaymentMethod `json:"method,omitempty" gorm:"foreignKey:MethodID"`
	Amount        float64        `json:"amount"`
	Status        PaymentStatus  `json:"status" gorm:"size:20;index"`
	TransactionID string         `json:"transactionId" gorm:"uniqueIndex;size:36"`
	Reference     string         `json:"reference" gorm:"size:40"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
