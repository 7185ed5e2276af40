package config

import (
	"fmt"
	"os"
	"strconv"
)

type ShopifyConfig struct {
	Domain       string // e.g. j0dktb-z1.myshopify.com
	Token        string // storefront access token
	APIVersion   string
	ProductLimit int
}

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string

	// Widget branding echoed back to the client with the order.
	MerchantName string
	Description  string
	ThemeColor   string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	From          string
	FromName      string
	TLSMode       string // "starttls" | "tls" | "none"
	SkipVerifyTLS bool
}

type AdminConfig struct {
	User         string
	PasswordHash string // bcrypt hash, empty disables admin routes
}

type Config struct {
	Addr    string
	BaseURL string
	DBDSN   string

	CartCookieName   string
	CartCookieSecret string
	CookieSecure     bool

	// Mailbox that receives paid-order notifications. Empty disables mail.
	NotifyEmail string

	Shopify  ShopifyConfig
	Razorpay RazorpayConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
}

// Load reads configuration from the environment. godotenv is loaded by the
// caller so plain env vars win in production.
func Load() (Config, error) {
	cfg := Config{
		Addr:    envOr("ADDR", ":8080"),
		BaseURL: envOr("BASE_URL", "http://localhost:8080"),
		DBDSN:   os.Getenv("DB_DSN"),

		CartCookieName:   envOr("CART_COOKIE_NAME", "undiyu_cart"),
		CartCookieSecret: os.Getenv("CART_COOKIE_SECRET"),
		CookieSecure:     envBool("COOKIE_SECURE", false),

		NotifyEmail: os.Getenv("ORDER_NOTIFY_EMAIL"),

		Shopify: ShopifyConfig{
			Domain:       os.Getenv("SHOPIFY_DOMAIN"),
			Token:        os.Getenv("SHOPIFY_STOREFRONT_TOKEN"),
			APIVersion:   envOr("SHOPIFY_API_VERSION", "2024-01"),
			ProductLimit: envInt("SHOPIFY_PRODUCT_LIMIT", 12),
		},
		Razorpay: RazorpayConfig{
			KeyID:         os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
			WebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
			MerchantName:  envOr("MERCHANT_NAME", "Undhyu.com"),
			Description:   envOr("MERCHANT_DESCRIPTION", "Authentic Indian Fashion"),
			ThemeColor:    envOr("CHECKOUT_THEME_COLOR", "#ea580c"),
		},
		SMTP: SMTPConfig{
			Host:          os.Getenv("SMTP_HOST"),
			Port:          envOr("SMTP_PORT", "587"),
			User:          os.Getenv("SMTP_USERNAME"),
			Pass:          os.Getenv("SMTP_PASSWORD"),
			From:          os.Getenv("SMTP_FROM"),
			FromName:      envOr("SMTP_FROM_NAME", "Undhyu"),
			TLSMode:       envOr("SMTP_TLS_MODE", "starttls"),
			SkipVerifyTLS: envBool("SMTP_SKIP_VERIFY_TLS", false),
		},
		Admin: AdminConfig{
			User:         envOr("ADMIN_USER", "admin"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required")
	}
	if cfg.CartCookieSecret == "" {
		return Config{}, fmt.Errorf("CART_COOKIE_SECRET is required")
	}
	if cfg.Shopify.Domain == "" || cfg.Shopify.Token == "" {
		return Config{}, fmt.Errorf("SHOPIFY_DOMAIN and SHOPIFY_STOREFRONT_TOKEN are required")
	}
	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		return Config{}, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
