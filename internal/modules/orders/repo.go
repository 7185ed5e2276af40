package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type CreateParams struct {
	ProviderRef string
	AmountPaise int64
	Currency    string
	Cart        any // marshalled into cart_json
}

func (r *Repo) Create(ctx context.Context, in CreateParams) (Order, error) {
	payload, err := json.Marshal(in.Cart)
	if err != nil {
		return Order{}, err
	}

	now := time.Now()
	o := Order{
		ID:          uuid.NewString(),
		ProviderRef: in.ProviderRef,
		AmountPaise: in.AmountPaise,
		Currency:    in.Currency,
		CartJSON:    datatypes.JSON(payload),
		Status:      StatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) GetByProviderRef(ctx context.Context, providerRef string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "provider_ref = ?", providerRef).Error
	return o, err
}

// MarkPaid flips a created order to paid and records the gateway payment id.
// Idempotent: an already-paid order is left as is.
func (r *Repo) MarkPaid(ctx context.Context, providerRef, paymentRef string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&Order{}).
		Where("provider_ref = ? AND status = ?", providerRef, StatusCreated).
		Updates(map[string]any{
			"status":      StatusPaid,
			"payment_ref": paymentRef,
			"paid_at":     &now,
			"updated_at":  now,
		}).Error
}

func (r *Repo) MarkFailed(ctx context.Context, providerRef string) error {
	return r.db.WithContext(ctx).Model(&Order{}).
		Where("provider_ref = ? AND status = ?", providerRef, StatusCreated).
		Updates(map[string]any{
			"status":     StatusFailed,
			"updated_at": time.Now(),
		}).Error
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var items []Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
