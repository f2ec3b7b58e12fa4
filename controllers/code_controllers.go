package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/events"
	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/utils"
)

type CodeController struct {
	codes *services.CodeService
}

func NewCodeController(codes *services.CodeService) *CodeController {
	return &CodeController{codes: codes}
}

func (cc *CodeController) GetAllCodes(c *gin.Context) {
	rows, err := cc.codes.List(services.CodeFilter{
		ActiveOnly: queryBool(c, "active"),
		InUseOnly:  queryBool(c, "in_use"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of comanda codes", rows)
}

func (cc *CodeController) CreateCode(c *gin.Context) {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	code, err := cc.codes.Create(body.Code)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastCodeUpdate(code)
	utils.RespondJSON(c, http.StatusCreated, "Comanda code created", code)
}

func (cc *CodeController) SetCodeActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	code, err := cc.codes.SetActive(id, body.Active)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastCodeUpdate(code)
	utils.RespondJSON(c, http.StatusOK, "Comanda code updated", code)
}

// ForceReleaseCode frees a code even when an open order holds it. The
// caller must confirm, since the open order gets cancelled and restocked.
func (cc *CodeController) ForceReleaseCode(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	confirm := queryBoolDefault(c, "confirm", false)
	code, err := cc.codes.ForceRelease(id, confirm)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastCodeUpdate(code)
	utils.RespondJSON(c, http.StatusOK, "Comanda code released", code)
}

func (cc *CodeController) DeleteCode(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	code, err := cc.codes.Delete(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Comanda code deleted", code)
}

// CodePanel renders the floor view rows: every code with its state and,
// when occupied, the live ticket summary.
func (cc *CodeController) CodePanel(c *gin.Context) {
	rows, err := cc.codes.Panel(queryBool(c, "active"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Comanda panel", rows)
}
