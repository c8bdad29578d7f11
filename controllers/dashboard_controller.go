package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboards *services.DashboardService
}

func NewDashboardController(d *services.DashboardService) DashboardController {
	return DashboardController{dashboards: d}
}

// GetAdminDashboard godoc
// @Summary Occupancy, reservation counts, net revenue and upcoming check-ins
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (d DashboardController) GetAdminDashboard(c *gin.Context) {
	data, err := d.dashboards.Admin(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, data)
}

func (d DashboardController) GetClientDashboard(c *gin.Context) {
	data, err := d.dashboards.Client(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, data)
}
