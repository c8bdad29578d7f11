package dto

import "github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r RegisterRequest) ToInput() services.RegisterInput {
	return services.RegisterInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Password: r.Password}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
