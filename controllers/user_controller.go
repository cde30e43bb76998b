package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iroda0103/dastavka/pkg/resp"
	"github.com/iroda0103/dastavka/services"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{Service: service}
}

// POST /users
func (uc *UserController) Create(c *gin.Context) {
	var req services.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := uc.Service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, user)
}

// GET /users?role=&telegramId=
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.Service.FindAll(c.Query("role"), c.Query("telegramId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, users)
}

// GET /users/restaurants
func (uc *UserController) OnlyRestaurants(c *gin.Context) {
	users, err := uc.Service.FindOnlyRestaurants()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, users)
}

// GET /users/tg?telegramId=
// Returns null data when the telegram account is not linked to anyone yet.
func (uc *UserController) ByTelegram(c *gin.Context) {
	user, err := uc.Service.FindByTelegramID(c.Query("telegramId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// GET /users/:id
func (uc *UserController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid user id")
		return
	}

	user, err := uc.Service.FindByID(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// PATCH /users/:id
func (uc *UserController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid user id")
		return
	}

	var req services.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := uc.Service.Update(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// DELETE /users/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid user id")
		return
	}

	user, err := uc.Service.Delete(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}
