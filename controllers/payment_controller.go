package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/dto"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	booking *services.BookingFacade
}

func NewPaymentController(booking *services.BookingFacade) PaymentController {
	return PaymentController{booking: booking}
}

func (p PaymentController) GetPayments(c *gin.Context) {
	var q dto.PaymentQuery
	if !bindQuery(c, &q) {
		return
	}
	f := q.ToFilter()
	list, total, err := p.booking.Payments().List(c.Request.Context(), middleware.CurrentActor(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, list, f.Page, f.Limit, int(total))
}

func (p PaymentController) GetPaymentMethods(c *gin.Context) {
	methods, err := p.booking.Payments().Methods(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, methods)
}

// RecordPayment godoc
// @Summary Record the payment of a confirmed reservation
// @Description the amount must equal the reservation total; the reservation becomes completed
// @Tags payments
// @Accept json
// @Produce json
// @Param body body dto.PaymentRequest true "payment"
// @Success 201 {object} response.Response
// @Router /payments [post]
func (p PaymentController) RecordPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := p.booking.RecordPayment(c.Request.Context(), middleware.CurrentActor(c), req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, result)
}

// Refund godoc
// @Summary Refund a completed reservation immediately
// @Description 100% seven or more days before check-in, 75% three or more, 50% otherwise
// @Tags payments
// @Accept json
// @Produce json
// @Param body body dto.PaymentRefundRequest true "refund"
// @Success 200 {object} response.Response
// @Router /payments/refund [post]
func (p PaymentController) Refund(c *gin.Context) {
	var req dto.PaymentRefundRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := p.booking.Refund(c.Request.Context(), middleware.CurrentActor(c), req.ReservationID, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (p PaymentController) ApproveRefund(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := p.booking.ApproveRefund(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (p PaymentController) RejectRefund(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RefundRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	result, err := p.booking.RejectRefund(c.Request.Context(), middleware.CurrentActor(c), id, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}
