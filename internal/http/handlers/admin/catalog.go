package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
)

// CatalogHandler refetches the product snapshot on demand
// (POST /api/admin/catalog/refresh). The storefront itself only loads the
// catalog at startup.
type CatalogHandler struct {
	Catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

func (h *CatalogHandler) Refresh(c *gin.Context) {
	h.Catalog.Load(c.Request.Context())
	count := len(h.Catalog.Products())
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": count})
}
