package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/events"
	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/utils"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// GetAllProducts -> paged product listing with search and active filters
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	page, err := pc.catalog.ListProducts(services.ProductFilter{
		Search:     c.Query("q"),
		ActiveOnly: queryBool(c, "active"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", page)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	product, err := pc.catalog.CreateProduct(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, err := pc.catalog.GetProduct(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	product, err := pc.catalog.UpdateProduct(id, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct -> soft delete by default, ?hard=true cascades into orders
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	hard := queryBoolDefault(c, "hard", false)
	product, itemsRemoved, err := pc.catalog.DeleteProduct(id, hard)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{
		"product":       product,
		"hard":          hard,
		"items_removed": itemsRemoved,
	})
}

func (pc *ProductController) AdjustStock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondBadRequest(c, err)
		return
	}
	product, err := pc.catalog.AdjustStock(id, body.Delta)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	events.BroadcastStockUpdate(product)
	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", product)
}

func (pc *ProductController) TopSellers(c *gin.Context) {
	rows, err := pc.catalog.TopSellers(queryInt(c, "limit", 8))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Top sellers", rows)
}
