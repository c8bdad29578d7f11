package dto

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"
)

type PaymentRequest struct {
	ReservationID uint     `json:"reservationId" binding:"required,gt=0"`
	MethodID      uint     `json:"methodId" binding:"required,gt=0"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
}

func (r PaymentRequest) ToInput() services.RecordPaymentInput {
	return services.RecordPaymentInput{ReservationID: r.ReservationID, MethodID: r.MethodID, Amount: r.Amount}
}

type PaymentRefundRequest struct {
	ReservationID uint   `json:"reservationId" binding:"required,gt=0"`
	Reason        string `json:"reason" binding:"max=1000"`
}

type PaymentQuery struct {
	PageQuery
	ReservationID *uint                `form:"reservationId"`
	Status        models.PaymentStatus `form:"status"`
}

func (q PaymentQuery) ToFilter() repository.PaymentFilter {
	page, limit := q.Normalize()
	return repository.PaymentFilter{
		ReservationID: q.ReservationID,
		Status:        q.Status,
		Page:          page,
		Limit:         limit,
	}
}
