package controllers

import (
	"strconv"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/response"

	"github.com/gin-gonic/gin"
)

// paramID reads a positive numeric path parameter and writes a 400 when it is not one
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	response.FromError(c, err)
}

