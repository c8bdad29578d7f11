package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/dto"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/validator"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) RoomController {
	return RoomController{rooms: rooms}
}

// GetAllRooms godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Param status query string false "room status"
// @Param floor query int false "floor"
// @Param capacity query int false "minimum capacity"
// @Param maxPrice query number false "maximum base price"
// @Param amenity query string false "amenity, typo tolerant"
// @Success 200 {object} response.Response
// @Router /rooms [get]
func (r RoomController) GetAllRooms(c *gin.Context) {
	var q dto.RoomQuery
	if !bindQuery(c, &q) {
		return
	}
	f := q.ToFilter()
	rooms, total, err := r.rooms.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, rooms, f.Page, f.Limit, total)
}

func (r RoomController) GetRoomDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	room, err := r.rooms.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, room)
}

// GetRoomAvailability godoc
// @Summary Check whether a room is free for a date range
// @Tags rooms
// @Produce json
// @Param id path int true "room id"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /rooms/{id}/availability [get]
func (r RoomController) GetRoomAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q dto.DateRangeQuery
	if !bindQuery(c, &q) {
		return
	}
	start, end, err := validator.ValidateDateRange(q.From, q.To)
	if err != nil {
		fail(c, err)
		return
	}
	availability, err := r.rooms.Availability(c.Request.Context(), id, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, availability)
}

func (r RoomController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := r.rooms.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, room)
}

func (r RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := r.rooms.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, room)
}

// ChangeRoomStatus godoc
// @Summary Change a room's status
// @Description maintenance is refused while an active reservation holds the room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path int true "room id"
// @Param body body dto.RoomStatusRequest true "status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /rooms/{id}/status [put]
func (r RoomController) ChangeRoomStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := r.rooms.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, room)
}

func (r RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := r.rooms.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

func (r RoomController) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "could not read file")
		return
	}
	defer src.Close()

	room, err := r.rooms.UploadPhoto(c.Request.Context(), id, src)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, room)
}
