package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/utils"
)

type AddonController struct {
	catalog *services.CatalogService
}

func NewAddonController(catalog *services.CatalogService) *AddonController {
	return &AddonController{catalog: catalog}
}

func (ac *AddonController) GetAllAddons(c *gin.Context) {
	rows, err := ac.catalog.ListAddons(services.AddonFilter{
		Search:     c.Query("q"),
		ActiveOnly: queryBool(c, "active"),
		Offset:     queryInt(c, "offset", 0),
		Limit:      queryInt(c, "limit", 500),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of addons", rows)
}

func (ac *AddonController) CreateAddon(c *gin.Context) {
	var in services.AddonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	addon, err := ac.catalog.CreateAddon(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Addon created", addon)
}

func (ac *AddonController) GetAddonByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	addon, err := ac.catalog.GetAddon(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Addon detail", addon)
}

func (ac *AddonController) UpdateAddon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.AddonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	addon, err := ac.catalog.UpdateAddon(id, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Addon updated", addon)
}

func (ac *AddonController) DeleteAddon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	hard := queryBoolDefault(c, "hard", false)
	addon, err := ac.catalog.DeleteAddon(id, hard)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Addon deleted", gin.H{"addon": addon, "hard": hard})
}
