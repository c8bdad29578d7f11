package dto

import (
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/validator"
)

type ReservationServiceItem struct {
	ServiceID uint `json:"serviceId" binding:"required,gt=0"`
	Quantity  int  `json:"quantity" binding:"omitempty,gt=0"`
}

func toServiceRequests(items []ReservationServiceItem) []services.ServiceRequest {
	if items == nil {
		return nil
	}
	out := make([]services.ServiceRequest, 0, len(items))
	for _, it := range items {
		out = append(out, services.ServiceRequest{ServiceID: it.ServiceID, Quantity: it.Quantity})
	}
	return out
}

// CreateReservationRequest dates are YYYY-MM-DD; ClientID is honoured for admins only
type CreateReservationRequest struct {
	ClientID  uint                     `json:"clientId"`
	RoomID    uint                     `json:"roomId" binding:"required,gt=0"`
	StartDate string                   `json:"startDate" binding:"required"`
	EndDate   string                   `json:"endDate" binding:"required"`
	Guests    int                      `json:"guests" binding:"required,gt=0"`
	Services  []ReservationServiceItem `json:"services" binding:"omitempty,dive"`
	Strategy  models.PricingStrategy   `json:"strategy" binding:"omitempty,pricing_strategy"`
	Notes     string                   `json:"notes" binding:"max=1000"`
}

func (r CreateReservationRequest) ToInput(actor services.Actor) (services.CreateReservationInput, error) {
	start, end, err := validator.ValidateDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return services.CreateReservationInput{}, err
	}
	clientID := actor.UserID
	if actor.IsAdmin() && r.ClientID != 0 {
		clientID = r.ClientID
	}
	return services.CreateReservationInput{
		ClientID:  clientID,
		RoomID:    r.RoomID,
		StartDate: start,
		EndDate:   end,
		Guests:    r.Guests,
		Services:  toServiceRequests(r.Services),
		Strategy:  r.Strategy,
		Notes:     r.Notes,
	}, nil
}

type ModifyReservationRequest struct {
	RoomID    *uint                    `json:"roomId" binding:"omitempty,gt=0"`
	StartDate *string                  `json:"startDate"`
	EndDate   *string                  `json:"endDate"`
	Guests    *int                     `json:"guests" binding:"omitempty,gt=0"`
	Services  []ReservationServiceItem `json:"services" binding:"omitempty,dive"`
	Notes     *string                  `json:"notes"`
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := utils.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r ModifyReservationRequest) ToInput() (services.ModifyReservationInput, error) {
	start, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return services.ModifyReservationInput{}, invalidDate("startDate", err)
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return services.ModifyReservationInput{}, invalidDate("endDate", err)
	}
	return services.ModifyReservationInput{
		RoomID:    r.RoomID,
		StartDate: start,
		EndDate:   end,
		Guests:    r.Guests,
		Services:  toServiceRequests(r.Services),
		Notes:     r.Notes,
	}, nil
}

type StatusRequest struct {
	Action models.ReservationAction `json:"action" binding:"required,reservation_action"`
	Reason string                   `json:"reason" binding:"max=1000"`
}

type BatchStatusRequest struct {
	IDs    []uint                   `json:"ids" binding:"required,min=1,dive,gt=0"`
	Action models.ReservationAction `json:"action" binding:"required,reservation_action"`
	Reason string                   `json:"reason" binding:"max=1000"`
}

type RefundRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type ReservationQuery struct {
	PageQuery
	Status   models.ReservationStatus `form:"status"`
	RoomID   *uint                    `form:"roomId"`
	ClientID *uint                    `form:"clientId"`
	From     string                   `form:"from"`
	To       string                   `form:"to"`
}

func (q ReservationQuery) ToFilter() (repository.ReservationFilter, error) {
	page, limit := q.Normalize()
	f := repository.ReservationFilter{
		ClientID: q.ClientID,
		RoomID:   q.RoomID,
		Status:   q.Status,
		Page:     page,
		Limit:    limit,
	}
	if q.From != "" {
		t, err := utils.ParseDate(q.From)
		if err != nil {
			return f, invalidDate("from", err)
		}
		f.From = &t
	}
	if q.To != "" {
		t, err := utils.ParseDate(q.To)
		if err != nil {
			return f, invalidDate("to", err)
		}
		f.To = &t
	}
	return f, nil
}
