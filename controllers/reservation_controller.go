package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/commands"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/dto"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	booking *services.BookingFacade
}

func NewReservationController(booking *services.BookingFacade) ReservationController {
	return ReservationController{booking: booking}
}

// GetReservations godoc
// @Summary List reservations; clients only see their own
// @Tags reservations
// @Produce json
// @Param status query string false "status"
// @Param roomId query int false "room"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /reservations [get]
func (r ReservationController) GetReservations(c *gin.Context) {
	var q dto.ReservationQuery
	if !bindQuery(c, &q) {
		return
	}
	f, err := q.ToFilter()
	if err != nil {
		fail(c, err)
		return
	}
	list, total, err := r.booking.Reservations().List(c.Request.Context(), middleware.CurrentActor(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, list, f.Page, f.Limit, int(total))
}

func (r ReservationController) GetReservationDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := r.booking.Reservations().Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}

// CreateReservation godoc
// @Summary Book a room
// @Tags reservations
// @Accept json
// @Produce json
// @Param body body dto.CreateReservationRequest true "reservation"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response "room not available for these dates"
// @Router /reservations [post]
func (r ReservationController) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := middleware.CurrentActor(c)
	in, err := req.ToInput(actor)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := commands.NewCreateReservationCommand(r.booking, actor, in).Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, res)
}

// QuoteReservation godoc
// @Summary Price a stay without booking it
// @Tags reservations
// @Accept json
// @Produce json
// @Param body body dto.CreateReservationRequest true "reservation"
// @Success 200 {object} response.Response
// @Router /reservations/quote [post]
func (r ReservationController) QuoteReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := middleware.CurrentActor(c)
	in, err := req.ToInput(actor)
	if err != nil {
		fail(c, err)
		return
	}
	quote, err := r.booking.Reservations().Quote(c.Request.Context(), actor, in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, quote)
}

func (r ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ModifyReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		fail(c, err)
		return
	}
	res, err := r.booking.ModifyBooking(c.Request.Context(), middleware.CurrentActor(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}

// ChangeReservationStatus godoc
// @Summary Apply a lifecycle action
// @Description action is one of confirm, complete, cancel, request_refund, refund, approve_refund, reject_refund
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "reservation id"
// @Param body body dto.StatusRequest true "action"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response "transition not allowed"
// @Router /reservations/{id}/status [put]
func (r ReservationController) ChangeReservationStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := commands.NewChangeStatusCommand(r.booking, middleware.CurrentActor(c), id, req.Action, req.Reason)
	res, err := cmd.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}

func (r ReservationController) BatchChangeStatus(c *gin.Context) {
	var req dto.BatchStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	results := commands.RunBatch(c.Request.Context(), r.booking, middleware.CurrentActor(c), req.IDs, req.Action, req.Reason)
	response.Success(c, results)
}

func (r ReservationController) RequestRefund(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RefundRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	res, err := r.booking.ChangeStatus(c.Request.Context(), middleware.CurrentActor(c), id, models.ActionRequestRefund, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}
