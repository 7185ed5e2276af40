package apphttp

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Divyanshi070700/Undiyu-2/internal/config"
	"github.com/Divyanshi070700/Undiyu-2/internal/http/cartcookie"
	"github.com/Divyanshi070700/Undiyu-2/internal/http/handlers"
	adminhandlers "github.com/Divyanshi070700/Undiyu-2/internal/http/handlers/admin"
	"github.com/Divyanshi070700/Undiyu-2/internal/http/middleware"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/cart"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/checkout"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/orders"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/payments"
)

type Deps struct {
	Logger *slog.Logger
	Cfg    config.Config

	Catalog    *catalog.Service
	Carts      *cart.Store
	CartCookie *cartcookie.Codec
	Checkout   *checkout.Service
	Provider   payments.Provider
	WebhookSvc *payments.WebhookService
	Orders     *orders.Repo
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	// ErrorHandler wraps Recovery so recovered panics still render as JSON.
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.ErrorHandler(d.Logger),
		middleware.Recovery(d.Logger),
	)

	// Gateway webhooks carry their own signature; no cart session.
	webhookH := handlers.NewWebhookHandler(d.Logger, d.Provider, d.WebhookSvc)
	r.POST("/webhooks/razorpay", webhookH.Handle)

	api := r.Group("/api")
	api.GET("/", handlers.Root)
	api.GET("/health", handlers.Health)

	productsH := handlers.NewProductsHandler(d.Catalog)
	api.GET("/products", productsH.List)

	// Everything below is tied to the shopper's cart session.
	session := api.Group("")
	session.Use(middleware.CartSession(d.CartCookie))

	cartH := handlers.NewCartHandler(d.Carts, d.Catalog)
	session.GET("/cart", cartH.Get)
	session.POST("/cart/items", cartH.Add)
	session.POST("/cart/items/update", cartH.Update)
	session.POST("/cart/items/remove", cartH.Remove)

	checkoutH := handlers.NewCheckoutHandler(d.Checkout)
	session.POST("/create-razorpay-order", checkoutH.CreateOrder)
	session.POST("/verify-payment", checkoutH.VerifyPayment)
	session.POST("/checkout/cancel", checkoutH.Cancel)
	session.GET("/checkout/state", checkoutH.State)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(d.Cfg.Admin.User, d.Cfg.Admin.PasswordHash))
	adminGroup.GET("/orders", adminhandlers.NewOrdersHandler(d.Orders).List)
	adminGroup.POST("/catalog/refresh", adminhandlers.NewCatalogHandler(d.Catalog).Refresh)

	return r
}
