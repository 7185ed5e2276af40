package payments

import "time"

const (
	StatusVerified = "verified"
	StatusFailed   = "failed"
)

// Payment records one verified (or rejected) gateway payment against an
// order. ProviderRef is the gateway payment id; unique per provider so the
// checkout callback and the webhook cannot double-record.
type Payment struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_payments_order_id"`
	Provider    string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_payments_provider_ref,priority:1"`
	ProviderRef string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_payments_provider_ref,priority:2"`
	Status      string    `gorm:"type:varchar(32);not null"`
	AmountPaise int64     `gorm:"not null"`
	Currency    string    `gorm:"type:char(3);not null"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "payments" }
