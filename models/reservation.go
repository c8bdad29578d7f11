package models

import (
	"time"
)

// ReservationStatus is the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusPending          ReservationStatus = "pending"
	ReservationStatusConfirmed        ReservationStatus = "confirmed"
	ReservationStatusCancelled        ReservationStatus = "cancelled"
	ReservationStatusCompleted        ReservationStatus = "completed"
	ReservationStatusRefundInProgress ReservationStatus = "refund_in_progress"
	ReservationStatusRefunded         ReservationStatus = "refunded"
)

// ActiveReservationStatuses block the room for their date range
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
}

// IsActive reports whether the reservation still holds its room
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

type Reservation struct {
	ID              uint                 `json:"id" gorm:"primaryKey"`
	ClientID        uint                 `json:"clientId" gorm:"index"`
	Client          *User                `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	RoomID          uint                 `json:"roomId" gorm:"index"`
	Room            *Room                `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	StartDate       time.Time            `json:"startDate" gorm:"type:date;index"`
	EndDate         time.Time            `json:"endDate" gorm:"type:date;index"`
	Guests          int                  `json:"guests"`
	Status          ReservationStatus    `json:"status" gorm:"size:24;default:pending;index"`
	Strategy        PricingStrategy      `json:"strategy" gorm:"size:20"`
	BasePrice       float64              `json:"basePrice"`
	Nights          int                  `json:"nights"`
	ServicesTotal   float64              `json:"servicesTotal"`
	TaxAmount       float64              `json:"taxAmount"`
	TotalPrice      float64              `json:"totalPrice"`
	PreviousTotal   float64              `json:"previousTotal"`
	PriceDifference float64              `json:"priceDifference"`
	RefundAmount    float64              `json:"refundAmount"`
	RefundReason    string               `json:"refundReason,omitempty" gorm:"type:text"`
	Notes           string               `json:"notes,omitempty" gorm:"type:text"`
	Services        []ReservationService `json:"services" gorm:"foreignKey:ReservationID"`
	Payments        []Payment            `json:"payments,omitempty" gorm:"foreignKey:ReservationID"`
	CreatedAt       time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ServicesSubtotal sums the snapshotted subtotals of the attached services
func (r *Reservation) ServicesSubtotal() float64 {
	var total float64
	for _, s := range r.Services {
		total += s.Subtotal
	}
	return total
}
