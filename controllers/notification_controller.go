package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/dto"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(n *services.NotificationService) NotificationController {
	return NotificationController{notifications: n}
}

func (n NotificationController) GetNotifications(c *gin.Context) {
	var q dto.NotificationQuery
	if !bindQuery(c, &q) {
		return
	}
	f := q.ToFilter()
	list, total, err := n.notifications.List(c.Request.Context(), middleware.CurrentActor(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, list, f.Page, f.Limit, int(total))
}

func (n NotificationController) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := n.notifications.MarkRead(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, item)
}

func (n NotificationController) DeleteNotification(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := n.notifications.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// SendNotification godoc
// @Summary Send a manual notice to clients
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body dto.SendNotificationRequest true "notice; empty userIds targets every client"
// @Success 200 {object} response.Response
// @Router /notifications [post]
func (n NotificationController) SendNotification(c *gin.Context) {
	var req dto.SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	sent, err := n.notifications.Send(c.Request.Context(), middleware.CurrentActor(c), req.UserIDs, req.Title, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"sent": sent})
}
