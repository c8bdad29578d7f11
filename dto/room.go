package dto

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"
)

type RoomRequest struct {
	Number      *string            `json:"number" binding:"omitempty,min=1,max=20"`
	Floor       *int               `json:"floor"`
	Capacity    *int               `json:"capacity" binding:"omitempty,gt=0"`
	BasePrice   *float64           `json:"basePrice" binding:"omitempty,gt=0"`
	Status      *models.RoomStatus `json:"status" binding:"omitempty,room_status"`
	Amenities   []string           `json:"amenities"`
	Description *string            `json:"description"`
}

func (r RoomRequest) ToInput() services.RoomInput {
	return services.RoomInput{
		Number:      r.Number,
		Floor:       r.Floor,
		Capacity:    r.Capacity,
		BasePrice:   r.BasePrice,
		Status:      r.Status,
		Amenities:   r.Amenities,
		Description: r.Description,
	}
}

type RoomStatusRequest struct {
	Status models.RoomStatus `json:"status" binding:"required,room_status"`
}

type RoomQuery struct {
	PageQuery
	Status      models.RoomStatus `form:"status" binding:"omitempty,room_status"`
	Floor       *int              `form:"floor"`
	MinCapacity *int              `form:"capacity"`
	MaxPrice    *float64          `form:"maxPrice"`
	Amenity     string            `form:"amenity"`
}

func (q RoomQuery) ToFilter() services.RoomFilter {
	page, limit := q.Normalize()
	return services.RoomFilter{
		Status:      q.Status,
		Floor:       q.Floor,
		MinCapacity: q.MinCapacity,
		MaxPrice:    q.MaxPrice,
		Amenity:     q.Amenity,
		Page:        page,
		Limit:       limit,
	}
}

type DateRangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}
