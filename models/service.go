package models

import "time"

// Service is an add-on that can be attached to a reservation
type Service struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:120;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	Available   bool      `json:"available" gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ReservationService is the pivot between reservations and services.
// UnitPrice is copied from the catalog when attached and never follows later price edits.
type ReservationService struct {
	ReservationID uint     `json:"reservationId" gorm:"primaryKey"`
	ServiceID     uint     `json:"serviceId" gorm:"primaryKey"`
	Service       *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Quantity      int      `json:"quantity" gorm:"default:1"`
	UnitPrice     float64  `json:"unitPrice"`
	Subtotal      float64  `json:"subtotal"`
}

func (ReservationService) TableName() string {
	return "reservation_service"
}
