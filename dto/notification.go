package dto

import "github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"

// SendNotificationRequest with no user ids targets every client
type SendNotificationRequest struct {
	UserIDs []uint `json:"userIds" binding:"omitempty,dive,gt=0"`
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

type NotificationQuery struct {
	PageQuery
	UserID     *uint `form:"userId"`
	UnreadOnly bool  `form:"unread"`
}

func (q NotificationQuery) ToFilter() repository.NotificationFilter {
	page, limit := q.Normalize()
	return repository.NotificationFilter{UserID: q.UserID, UnreadOnly: q.UnreadOnly, Page: page, Limit: limit}
}
