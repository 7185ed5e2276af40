package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/orders"
)

type ProviderEvent struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Provider    string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_provider_events_provider_event,priority:1"`
	EventID     string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_provider_events_provider_event,priority:2"`
	EventType   string         `gorm:"type:varchar(64);not null"`
	PayloadJSON datatypes.JSON `gorm:"type:json;not null"`

	ReceivedAt   time.Time  `gorm:"type:datetime(3);not null"`
	ProcessedAt  *time.Time `gorm:"type:datetime(3)"`
	ProcessError *string    `gorm:"type:varchar(255)"`
}

func (ProviderEvent) TableName() string { return "provider_events" }

// WebhookService persists gateway events and applies them to order and
// payment rows. The gateway retries on non-2xx, so apply errors propagate and
// duplicates resolve to success.
type WebhookService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewWebhookService(db *gorm.DB) *WebhookService {
	return &WebhookService{db: db, logger: slog.Default()}
}

func (s *WebhookService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

func (s *WebhookService) Handle(ctx context.Context, providerName string, ev WebhookEvent, rawBody []byte) error {
	payload, _ := json.RawMessage(rawBody).MarshalJSON()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		pe := ProviderEvent{
			ID:          uuid.NewString(),
			Provider:    providerName,
			EventID:     ev.EventID,
			EventType:   ev.Type,
			PayloadJSON: datatypes.JSON(payload),
			ReceivedAt:  now,
		}

		// dedupe: unique(provider,event_id)
		if err := tx.WithContext(ctx).Create(&pe).Error; err != nil {
			if isDup(err) {
				s.logger.InfoContext(ctx, "webhook event deduplicated", "provider", providerName, "event_id", ev.EventID, "type", ev.Type)
				return nil
			}
			s.logger.ErrorContext(ctx, "failed to persist provider event", "provider", providerName, "event_id", ev.EventID, "err", err)
			return err
		}

		var applyErr error
		switch ev.Type {
		case "payment.captured":
			applyErr = s.applyPaymentCaptured(ctx, tx, providerName, ev)
		case "payment.failed":
			applyErr = s.applyPaymentFailed(ctx, tx, providerName, ev)
		default:
			applyErr = ErrUnknownEvent
		}

		if applyErr != nil {
			msg := truncate(applyErr.Error(), 250)
			if err := tx.WithContext(ctx).Model(&ProviderEvent{}).
				Where("id = ?", pe.ID).
				Updates(map[string]any{"process_error": msg}).Error; err != nil {
				return err
			}
			s.logger.ErrorContext(ctx, "webhook event apply failed", "provider", providerName, "event_id", ev.EventID, "type", ev.Type, "error", msg)
			return applyErr
		}

		processed := now
		if err := tx.WithContext(ctx).Model(&ProviderEvent{}).
			Where("id = ?", pe.ID).
			Updates(map[string]any{"processed_at": &processed, "process_error": nil}).Error; err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "webhook event processed", "provider", providerName, "event_id", ev.EventID, "type", ev.Type)
		return nil
	})
}

func (s *WebhookService) applyPaymentCaptured(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	if ev.OrderRef == "" || ev.PaymentRef == "" {
		return errors.New("missing order or payment ref")
	}

	var o orders.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "provider_ref = ?", ev.OrderRef).Error; err != nil {
		return err // not found yet: propagate so the gateway retries
	}

	now := time.Now()
	if o.Status == orders.StatusCreated {
		paidAt := now
		if err := tx.WithContext(ctx).Model(&orders.Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"status":      orders.StatusPaid,
				"payment_ref": ev.PaymentRef,
				"paid_at":     &paidAt,
				"updated_at":  now,
			}).Error; err != nil {
			return err
		}
	}

	return ensurePayment(ctx, tx, Payment{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		Provider:    provider,
		ProviderRef: ev.PaymentRef,
		Status:      StatusVerified,
		AmountPaise: ev.AmountPaise,
		Currency:    ev.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *WebhookService) applyPaymentFailed(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	if ev.OrderRef == "" || ev.PaymentRef == "" {
		return errors.New("missing order or payment ref")
	}

	var o orders.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "provider_ref = ?", ev.OrderRef).Error; err != nil {
		return err
	}

	now := time.Now()
	// A later capture wins over an earlier failure; only downgrade created
	// orders.
	if o.Status == orders.StatusCreated {
		if err := tx.WithContext(ctx).Model(&orders.Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"status":     orders.StatusFailed,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}
	}

	return ensurePayment(ctx, tx, Payment{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		Provider:    provider,
		ProviderRef: ev.PaymentRef,
		Status:      StatusFailed,
		AmountPaise: ev.AmountPaise,
		Currency:    ev.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// ensurePayment inserts the payment row once; the checkout callback and the
// webhook may both report the same payment.
func ensurePayment(ctx context.Context, tx *gorm.DB, p Payment) error {
	if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
		if isDup(err) {
			return nil
		}
		return err
	}
	return nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
