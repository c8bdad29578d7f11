package dto

import "github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

type ServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Available   *bool    `json:"available"`
}

func (r ServiceRequest) ToInput() services.ServiceInput {
	return services.ServiceInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Available:   r.Available,
	}
}

type SearchQuery struct {
	Q string `form:"q" binding:"required"`
}
