package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iroda0103/dastavka/pkg/resp"
	"github.com/iroda0103/dastavka/services"
	"github.com/iroda0103/dastavka/utils"
)

type OrderController struct {
	Service *services.OrderService
	Reports *services.ReportService
}

func NewOrderController(service *services.OrderService, reports *services.ReportService) *OrderController {
	return &OrderController{Service: service, Reports: reports}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders/restaurant/:restaurantId
func (oc *OrderController) ListForRestaurant(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	rows, err := oc.Service.FindAllByRestaurant(uint(restaurantID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/my-orders/:userId
// Non-admin callers only see their own history.
func (oc *OrderController) MyOrders(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		resp.BadRequest(c, "invalid user id")
		return
	}

	if utils.CurrentRole(c) != "admin" && utils.CurrentUserID(c) != uint(userID) {
		resp.Forbidden(c, "cannot view another user's orders")
		return
	}

	rows, err := oc.Service.MyOrders(uint(userID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.Service.FindOne(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id
func (oc *OrderController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req services.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Update(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id
func (oc *OrderController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	res, err := oc.Service.Delete(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, res)
}

// GET /orders/export/:restaurantId
func (oc *OrderController) Export(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	wb, err := oc.Reports.ExportRestaurantOrders(uint(restaurantID))
	if err != nil {
		resp.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		resp.ServerError(c, err)
		return
	}

	filename := fmt.Sprintf("orders-restaurant-%d.xlsx", restaurantID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
