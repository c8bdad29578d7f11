package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userId" gorm:"index"`
	Event     string         `json:"event" gorm:"size:40;index"`
	Channel   string         `json:"channel" gorm:"size:20"`
	Title     string         `json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	Read      bool           `json:"read" gorm:"default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
