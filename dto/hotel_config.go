package dto

import "github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

type HotelConfigRequest struct {
	HotelName               *string  `json:"hotelName" binding:"omitempty,min=1,max=120"`
	Currency                *string  `json:"currency" binding:"omitempty,len=3"`
	TaxRate                 *float64 `json:"taxRate" binding:"omitempty,gte=0,lte=100"`
	CancellationWindowHours *int     `json:"cancellationWindowHours" binding:"omitempty,gte=0"`
	CheckInTime             *string  `json:"checkInTime"`
	CheckOutTime            *string  `json:"checkOutTime"`
}

func (r HotelConfigRequest) ToInput() services.UpdateHotelConfigInput {
	return services.UpdateHotelConfigInput{
		HotelName:               r.HotelName,
		Currency:                r.Currency,
		TaxRate:                 r.TaxRate,
		CancellationWindowHours: r.CancellationWindowHours,
		CheckInTime:             r.CheckInTime,
		CheckOutTime:            r.CheckOutTime,
	}
}
