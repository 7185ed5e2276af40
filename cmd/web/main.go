package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Divyanshi070700/Undiyu-2/internal/config"
	apphttp "github.com/Divyanshi070700/Undiyu-2/internal/http"
	"github.com/Divyanshi070700/Undiyu-2/internal/http/cartcookie"
	"github.com/Divyanshi070700/Undiyu-2/internal/mailer"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/cart"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/checkout"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/orders"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/payments"
	"github.com/Divyanshi070700/Undiyu-2/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	receipts, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("receipt storage ready", "driver", receipts.Driver)

	catalogSvc := catalog.NewService(catalog.NewClient(cfg.Shopify), logger)
	catalogSvc.Load(ctx)

	carts := cart.NewStore()
	ck := cartcookie.New([]byte(cfg.CartCookieSecret), cfg.CartCookieName, cfg.CookieSecure)

	provider := payments.NewRazorpay(cfg.Razorpay)
	orderRepo := orders.NewRepo(db)
	payRepo := payments.NewRepo(db)

	webhookSvc := payments.NewWebhookService(db)
	webhookSvc.SetLogger(logger)

	var notify checkout.Notifier
	if cfg.NotifyEmail != "" && cfg.SMTP.Host != "" {
		notify = mailer.NewOrderNotifier(
			mailer.NewSMTPMailer(cfg.SMTP),
			cfg.SMTP.From, cfg.SMTP.FromName, cfg.NotifyEmail,
		)
	}

	checkoutSvc := checkout.NewService(
		carts, provider, orderRepo, payRepo,
		receipts.Storage, notify, cfg.Razorpay, logger,
	)

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:     logger,
		Cfg:        cfg,
		Catalog:    catalogSvc,
		Carts:      carts,
		CartCookie: ck,
		Checkout:   checkoutSvc,
		Provider:   provider,
		WebhookSvc: webhookSvc,
		Orders:     orderRepo,
	})

	logger.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
