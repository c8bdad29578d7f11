package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/dto"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

type HotelConfigController struct {
	config *services.HotelConfigService
}

func NewHotelConfigController(cfg *services.HotelConfigService) HotelConfigController {
	return HotelConfigController{config: cfg}
}

func (h HotelConfigController) GetConfiguration(c *gin.Context) {
	cfg, err := h.config.Current(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, cfg)
}

func (h HotelConfigController) UpdateConfiguration(c *gin.Context) {
	var req dto.HotelConfigRequest
	if !bindJSON(c, &req) {
		return
	}
	cfg, err := h.config.Update(c.Request.Context(), req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, cfg)
}
