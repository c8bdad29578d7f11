package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/dto"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{auth: auth}
}

// RegisterUser godoc
// @Summary Register a client account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "account"
// @Success 201 {object} response.Response
// @Router /auth/register [post]
func (a AuthController) RegisterUser(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := a.auth.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, result)
}

// Login godoc
// @Summary Log in and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "credentials"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := a.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (a AuthController) GetProfile(c *gin.Context) {
	user, err := a.auth.Profile(c.Request.Context(), middleware.CurrentActor(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}
