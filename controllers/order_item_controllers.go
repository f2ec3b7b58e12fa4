package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/events"
	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/utils"
)

type OrderItemController struct {
	orders *services.OrderService
}

func NewOrderItemController(orders *services.OrderService) *OrderItemController {
	return &OrderItemController{orders: orders}
}

func (ic *OrderItemController) AddItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	order, err := ic.orders.AddItem(orderID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusCreated, "Item added", order)
}

func (ic *OrderItemController) UpdateItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var in services.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	order, err := ic.orders.UpdateItem(orderID, itemID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Item updated", order)
}

func (ic *OrderItemController) RemoveItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	order, err := ic.orders.RemoveItem(orderID, itemID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Item removed", order)
}

// ForceRemoveItem strips a line from a ticket in any status. Admin
// correction path, restocks by default.
func (ic *OrderItemController) ForceRemoveItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	restock := queryBoolDefault(c, "restock", true)
	order, err := ic.orders.ForceRemoveItem(orderID, itemID, restock)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Item force removed", order)
}

// MoveItem transfers a line between two open tickets.
func (ic *OrderItemController) MoveItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var body struct {
		TargetOrderID uint `json:"target_order_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	source, err := ic.orders.MoveItem(orderID, itemID, body.TargetOrderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastOrderUpdate(source)
	utils.RespondJSON(c, http.StatusOK, "Item moved", source)
}
