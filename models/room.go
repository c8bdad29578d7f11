package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// RoomStatus is the stored status of a room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusReserved    RoomStatus = "reserved"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

var roomStatuses = map[RoomStatus]struct{}{
	RoomStatusAvailable:   {},
	RoomStatusReserved:    {},
	RoomStatusOccupied:    {},
	RoomStatusMaintenance: {},
}

// IsValid reports whether s is a known room status
func (s RoomStatus) IsValid() bool {
	_, ok := roomStatuses[s]
	return ok
}

type Room struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Number      string         `json:"number" gorm:"uniqueIndex;size:20;not null"`
	Floor       int            `json:"floor"`
	Capacity    int            `json:"capacity" gorm:"not null"`
	BasePrice   float64        `json:"basePrice" gorm:"not null"`
	Status      RoomStatus     `json:"status" gorm:"size:20;default:available;index"`
	Amenities   pq.StringArray `json:"amenities" gorm:"type:text[]"`
	Description string         `json:"description" gorm:"type:text"`
	PhotoURL    string         `json:"photoUrl"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Room) ValidateStatus() error {
	if !r.Status.IsValid() {
		return fmt.Errorf("invalid status: %q", r.Status)
	}
	return nil
}
