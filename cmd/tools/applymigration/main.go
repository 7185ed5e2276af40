package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/orders"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/payments"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&orders.Order{},
		&payments.Payment{},
		&payments.ProviderEvent{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("✓ Schema migrated: orders, payments, provider_events")
}
