package payments

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Record inserts the payment row once. The checkout callback and the webhook
// can both report the same gateway payment; the second insert is a no-op.
func (r *Repo) Record(ctx context.Context, p Payment) error {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isDup(err) {
			return nil
		}
		return err
	}
	return nil
}

func (r *Repo) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	var items []Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
