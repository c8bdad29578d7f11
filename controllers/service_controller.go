package controllers

import (
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/dto"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
)

// ServiceController serves the add-on service catalog
type ServiceController struct {
	catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) ServiceController {
	return ServiceController{catalog: catalog}
}

func (s ServiceController) GetAllServices(c *gin.Context) {
	list, err := s.catalog.List(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// SearchServices godoc
// @Summary Fuzzy search services by name
// @Tags services
// @Produce json
// @Param q query string true "search text, accents and typos are tolerated"
// @Success 200 {object} response.Response
// @Router /services/search [get]
func (s ServiceController) SearchServices(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := s.catalog.Search(c.Request.Context(), middleware.CurrentActor(c), q.Q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (s ServiceController) GetServiceDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc, err := s.catalog.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, svc)
}

func (s ServiceController) CreateService(c *gin.Context) {
	var req dto.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := s.catalog.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, svc)
}

func (s ServiceController) UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := s.catalog.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, svc)
}

func (s ServiceController) DeleteService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := s.catalog.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
