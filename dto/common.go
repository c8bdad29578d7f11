package dto

import "github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"

// PageQuery is bound from ?page=&limit=, page is zero based
type PageQuery struct {
	Page  int `form:"page" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0,max=100"`
}

func (q PageQuery) Normalize() (int, int) {
	limit := q.Limit
	if limit == 0 {
		limit = constants.DefaultLimit
	}
	return q.Page, limit
}

type IDsRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1,dive,gt=0"`
}
