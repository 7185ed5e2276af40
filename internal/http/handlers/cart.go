package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divyanshi070700/Undiyu-2/internal/http/middleware"
	"github.com/Divyanshi070700/Undiyu-2/internal/http/validation"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/cart"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
	"github.com/Divyanshi070700/Undiyu-2/internal/shared/apperr"
	"github.com/Divyanshi070700/Undiyu-2/pkg/view"
)

// CartHandler handles the session cart (GET /api/cart, POST /api/cart/items,
// POST /api/cart/items/update, POST /api/cart/items/remove). Product ids are
// storefront GIDs and carry slashes, so they travel in the body, not the
// path.
type CartHandler struct {
	Carts   *cart.Store
	Catalog *catalog.Service
}

func NewCartHandler(carts *cart.Store, cat *catalog.Service) *CartHandler {
	return &CartHandler{Carts: carts, Catalog: cat}
}

func (h *CartHandler) Get(c *gin.Context) {
	sid := middleware.CartSessionID(c)
	c.JSON(http.StatusOK, view.CartPageFrom(h.Carts.Snapshot(sid)))
}

type addItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Add puts one unit of a catalog product into the cart; adding the same
// product again bumps the existing line's quantity.
func (h *CartHandler) Add(c *gin.Context) {
	var in addItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", validation.FromBindError(err, &in)))
		return
	}

	p, ok := h.Catalog.Get(in.ProductID)
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}

	sid := middleware.CartSessionID(c)
	h.Carts.Add(sid, p)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to cart!",
		"cart":    view.CartPageFrom(h.Carts.Snapshot(sid)),
	})
}

type updateItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       *int   `json:"qty" binding:"required,gte=0"`
}

// Update sets the line quantity; qty 0 removes the line.
func (h *CartHandler) Update(c *gin.Context) {
	var in updateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", validation.FromBindError(err, &in)))
		return
	}

	sid := middleware.CartSessionID(c)
	h.Carts.UpdateQty(sid, in.ProductID, *in.Qty)

	c.JSON(http.StatusOK, view.CartPageFrom(h.Carts.Snapshot(sid)))
}

type removeItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Remove deletes the line; removing an absent product is not an error.
func (h *CartHandler) Remove(c *gin.Context) {
	var in removeItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", validation.FromBindError(err, &in)))
		return
	}

	sid := middleware.CartSessionID(c)
	h.Carts.Remove(sid, in.ProductID)

	c.JSON(http.StatusOK, view.CartPageFrom(h.Carts.Snapshot(sid)))
}
