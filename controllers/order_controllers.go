package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/recati/comanda-app/events"
	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (oc *OrderController) OpenOrder(c *gin.Context) {
	var in services.OpenOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	order, err := oc.orders.Open(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusCreated, "Order opened", order)
}

func queryDecimal(c *gin.Context, name string) *decimal.Decimal {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	rows, err := oc.orders.List(services.OrderFilter{
		Status:       c.Query("status"),
		DeliveryType: c.Query("delivery_type"),
		Code:         c.Query("code"),
		Table:        c.Query("table"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		TotalMin:     queryDecimal(c, "total_min"),
		TotalMax:     queryDecimal(c, "total_max"),
		OrderBy:      c.Query("order_by"),
		OrderDesc:    queryBoolDefault(c, "desc", false),
		Offset:       queryInt(c, "offset", 0),
		Limit:        queryInt(c, "limit", 500),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", rows)
}

func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	rows, err := oc.orders.History(services.HistoryFilter{
		Status:     c.Query("status"),
		OnlyClosed: queryBoolDefault(c, "closed", true),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Limit:      queryInt(c, "limit", 200),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history", rows)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := oc.orders.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status  string `json:"status"`
		Restock *bool  `json:"restock"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	restock := true
	if body.Restock != nil {
		restock = *body.Restock
	}
	next := models.OrderStatus(strings.ToUpper(strings.TrimSpace(body.Status)))
	order, err := oc.orders.SetStatus(id, next, restock)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// ResetOrder empties and cancels a ticket, releasing its code. Used by the
// floor staff when a comanda was opened by mistake.
func (oc *OrderController) ResetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := oc.orders.Reset(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderDelete(id)
	utils.RespondJSON(c, http.StatusOK, "Order reset", result)
}

// ResetActiveOrders resets every open ticket in one pass.
func (oc *OrderController) ResetActiveOrders(c *gin.Context) {
	result, err := oc.orders.ResetActive()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active orders reset", result)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := oc.orders.Delete(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderDelete(id)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", result)
}

// GetOrderReceipt builds the printable receipt payload. Pass
// ?kitchen=true for the kitchen ticket variant.
func (oc *OrderController) GetOrderReceipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := oc.orders.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	kitchen := queryBoolDefault(c, "kitchen", false)
	autoPrint := queryBoolDefault(c, "autoprint", false)
	receipt := services.BuildReceipt(order, kitchen, autoPrint)
	utils.RespondJSON(c, http.StatusOK, "Order receipt", receipt)
}
