package orders

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusCreated = "created"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// Order is the server-side record of one checkout attempt. ProviderRef is the
// gateway's order id (the one the widget is configured with); CartJSON holds
// the line summaries the order was created from.
type Order struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	ProviderRef string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_orders_provider_ref"`
	AmountPaise int64          `gorm:"not null"`
	Currency    string         `gorm:"type:char(3);not null"`
	CartJSON    datatypes.JSON `gorm:"type:json;not null"`
	Status      string         `gorm:"type:varchar(32);not null"`
	PaymentRef  *string        `gorm:"type:varchar(128)"`
	PaidAt      *time.Time     `gorm:"type:datetime(3)"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }
