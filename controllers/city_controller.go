package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iroda0103/dastavka/pkg/resp"
	"github.com/iroda0103/dastavka/services"
)

type CityController struct {
	Service *services.CityService
}

func NewCityController(service *services.CityService) *CityController {
	return &CityController{Service: service}
}

// POST /cities
func (cc *CityController) Create(c *gin.Context) {
	var req services.CreateCityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	city, err := cc.Service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, city)
}

// GET /cities
func (cc *CityController) List(c *gin.Context) {
	cities, err := cc.Service.FindAll()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cities)
}

// GET /cities/:id?relations=true
func (cc *CityController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid city id")
		return
	}

	city, err := cc.Service.FindOne(uint(id), c.Query("relations") == "true")
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, city)
}

// DELETE /cities/:id
func (cc *CityController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid city id")
		return
	}

	city, err := cc.Service.Remove(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, city)
}
