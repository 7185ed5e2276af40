package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
)

// ProductsHandler serves the catalog snapshot (GET /api/products).
type ProductsHandler struct {
	Catalog *catalog.Service
}

func NewProductsHandler(svc *catalog.Service) *ProductsHandler {
	return &ProductsHandler{Catalog: svc}
}

func (h *ProductsHandler) List(c *gin.Context) {
	items := h.Catalog.Products()

	resp := gin.H{
		"products": items,
		"count":    len(items),
	}
	// loaded_at lets operators tell "no products" from "fetch failed"
	// without changing the degrade-to-empty behavior.
	if loadedAt, ok := h.Catalog.LoadedAt(); ok {
		resp["loaded_at"] = loadedAt
	}

	c.JSON(http.StatusOK, resp)
}
