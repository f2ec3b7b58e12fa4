package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/events"
	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/utils"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	rows, err := pc.payments.List(services.PaymentFilter{
		OrderID: uint(queryInt(c, "order_id", 0)),
		Offset:  queryInt(c, "offset", 0),
		Limit:   queryInt(c, "limit", 500),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payments", rows)
}

// CreateManualPayment records a cash or PIX payment as already approved.
func (pc *PaymentController) CreateManualPayment(c *gin.Context) {
	var in services.ManualPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	payment, err := pc.payments.RecordManual(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastPaymentUpdate(payment)
	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

// StartTerminalPayment opens a PENDING card charge against the terminal.
func (pc *PaymentController) StartTerminalPayment(c *gin.Context) {
	var in services.TerminalStartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	payment, err := pc.payments.StartTerminal(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastPaymentUpdate(payment)
	utils.RespondJSON(c, http.StatusCreated, "Terminal payment started", payment)
}

// ConfirmTerminalPayment settles a pending charge as approved or rejected.
func (pc *PaymentController) ConfirmTerminalPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.TerminalConfirmInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	payment, err := pc.payments.ConfirmTerminal(id, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastPaymentUpdate(payment)
	utils.RespondJSON(c, http.StatusOK, "Terminal payment settled", payment)
}
