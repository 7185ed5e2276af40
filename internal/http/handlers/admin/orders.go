package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Divyanshi070700/Undiyu-2/internal/http/middleware"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/orders"
	"github.com/Divyanshi070700/Undiyu-2/internal/shared/apperr"
	"github.com/Divyanshi070700/Undiyu-2/pkg/view"
)

// OrdersHandler lists recent orders (GET /api/admin/orders).
type OrdersHandler struct {
	Repo *orders.Repo
}

func NewOrdersHandler(repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{Repo: repo}
}

func (h *OrdersHandler) List(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	items, err := h.Repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]gin.H, 0, len(items))
	for _, o := range items {
		rows = append(rows, gin.H{
			"id":           o.ID,
			"provider_ref": o.ProviderRef,
			"status":       o.Status,
			"amount":       view.FormatMoney(o.Currency, float64(o.AmountPaise)/100),
			"payment_ref":  o.PaymentRef,
			"paid_at":      o.PaidAt,
			"created_at":   o.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"orders": rows, "count": len(rows)})
}
