// file: internals/features/payments/model/webhook_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ================================
   MODEL: webhook_logs
   Append-only audit trail of inbound webhook calls.
   - One row per delivery, written BEFORE any interpretation so a
     malformed payload is still recoverable.
   - Payload is stored verbatim as text, not jsonb: rejected bodies may
     not be valid JSON at all.
================================ */

type WebhookLogModel struct {
	WebhookLogID uuid.UUID `json:"webhook_log_id" gorm:"column:webhook_log_id;type:uuid;primaryKey"`

	WebhookLogPayload    string    `json:"received_payload" gorm:"column:webhook_log_payload;type:text"`
	WebhookLogReceivedAt time.Time `json:"received_at"      gorm:"column:webhook_log_received_at;not null"`

	WebhookLogProcessed bool    `json:"processed" gorm:"column:webhook_log_processed;not null;default:false"`
	WebhookLogError     *string `json:"error"     gorm:"column:webhook_log_error;type:text"`
}

func (WebhookLogModel) TableName() string { return "webhook_logs" }

func (m *WebhookLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.WebhookLogID == uuid.Nil {
		m.WebhookLogID = uuid.New()
	}
	if m.WebhookLogReceivedAt.IsZero() {
		m.WebhookLogReceivedAt = time.Now()
	}
	return nil
}
