package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iroda0103/dastavka/pkg/resp"
	"github.com/iroda0103/dastavka/services"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(service *services.MenuService) *MenuController {
	return &MenuController{Service: service}
}

// POST /menu
func (mc *MenuController) Create(c *gin.Context) {
	var req services.CreateMenuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	menu, err := mc.Service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, menu)
}

// GET /menu/restaurant/:restaurantId
func (mc *MenuController) ListForRestaurant(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	menus, err := mc.Service.FindAllByRestaurant(uint(restaurantID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, menus)
}

// GET /menu/:id
func (mc *MenuController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid menu id")
		return
	}

	menu, err := mc.Service.FindOne(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, menu)
}

// PATCH /menu/:id
func (mc *MenuController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid menu id")
		return
	}

	var req services.UpdateMenuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	menu, err := mc.Service.Update(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, menu)
}

// DELETE /menu/:id
func (mc *MenuController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid menu id")
		return
	}

	if err := mc.Service.Remove(uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "menu item deleted successfully", "id": id})
}
