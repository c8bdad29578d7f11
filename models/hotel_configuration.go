package models

import "time"

// HotelConfiguration holds the values pricing and cancellation depend on.
// There is a single row; callers pass it explicitly instead of reading a global.
type HotelConfiguration struct {
	ID                      uint      `json:"id" gorm:"primaryKey"`
	HotelName               string    `json:"hotelName"`
	Currency                string    `json:"currency" gorm:"size:3;default:MXN"`
	TaxRate                 float64   `json:"taxRate" gorm:"default:16"`
	CancellationWindowHours int       `json:"cancellationWindowHours" gorm:"default:24"`
	CheckInTime             string    `json:"checkInTime" gorm:"size:5;default:15:00"`
	CheckOutTime            string    `json:"checkOutTime" gorm:"size:5;default:12:00"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (HotelConfiguration) TableName() string {
	return "hotel_configuration"
}

// DefaultHotelConfiguration is used until an admin saves one
func DefaultHotelConfiguration() HotelConfiguration {
	return HotelConfiguration{
		ID:                      1,
		HotelName:               "Hotel",
		Currency:                "MXN",
		TaxRate:                 16,
		CancellationWindowHours: 24,
		CheckInTime:             "15:00",
		CheckOutTime:            "12:00",
	}
}
