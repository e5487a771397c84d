// file: internals/features/payments/model/order_status_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ================================
   Status sub-states
   The status column is an opaque string: the gateway is authoritative
   and sends its own vocabulary. Only the two pending sub-states are
   ours: "pending_unsent" (row persisted, gateway call not yet made or
   failed) and "pending" (gateway accepted the collect request).
================================ */

const (
	StatusPendingUnsent = "pending_unsent"
	StatusPending       = "pending"
	StatusSuccess       = "success"
	StatusFailed        = "failed"
)

// IsPending matches any of the pending sub-states.
func IsPending(status string) bool {
	return status == StatusPending || status == StatusPendingUnsent
}

/* ================================
   MODEL: order_statuses
   Mutable lifecycle of one payment. Soft reference to orders without
   an FK, the reconciliation core keeps the two consistent procedurally.
================================ */

type OrderStatusModel struct {
	OrderStatusID uuid.UUID `json:"order_status_id" gorm:"column:order_status_id;type:uuid;primaryKey"`

	// nullable: a late-bound status created by a webhook may never
	// resolve to an order
	OrderStatusOrderID *uuid.UUID `json:"order_id" gorm:"column:order_status_order_id;type:uuid;index"`

	// both identifiers are independently nullable and independently
	// looked up; see controller.findStatusByIdentifiers
	OrderStatusCustomOrderID    *string `json:"custom_order_id"    gorm:"column:order_status_custom_order_id;type:varchar(120);index"`
	OrderStatusGatewayCollectID *string `json:"gateway_collect_id" gorm:"column:order_status_gateway_collect_id;type:varchar(120);index"`

	OrderStatusOrderAmount       float64  `json:"order_amount"       gorm:"column:order_status_order_amount"`
	OrderStatusTransactionAmount *float64 `json:"transaction_amount" gorm:"column:order_status_transaction_amount"`

	OrderStatusStatus        string  `json:"status"         gorm:"column:order_status_status;type:varchar(64);not null;default:'pending_unsent'"`
	OrderStatusCaptureStatus *string `json:"capture_status" gorm:"column:order_status_capture_status;type:varchar(64)"`

	OrderStatusPaymentMode    *string        `json:"payment_mode"    gorm:"column:order_status_payment_mode;type:varchar(64)"`
	OrderStatusPaymentDetails datatypes.JSON `json:"payment_details" gorm:"column:order_status_payment_details;type:jsonb"`
	OrderStatusBankReference  *string        `json:"bank_reference"  gorm:"column:order_status_bank_reference;type:varchar(120)"`
	OrderStatusPaymentMessage *string        `json:"payment_message" gorm:"column:order_status_payment_message;type:text"`
	OrderStatusErrorMessage   *string        `json:"error_message"   gorm:"column:order_status_error_message;type:text"`

	OrderStatusPaymentTime *time.Time `json:"payment_time" gorm:"column:order_status_payment_time"`

	OrderStatusCreatedAt time.Time `json:"created_at" gorm:"column:order_status_created_at;not null"`
	OrderStatusUpdatedAt time.Time `json:"updated_at" gorm:"column:order_status_updated_at;not null"`
}

func (OrderStatusModel) TableName() string { return "order_statuses" }

func (m *OrderStatusModel) BeforeCreate(tx *gorm.DB) error {
	if m.OrderStatusID == uuid.Nil {
		m.OrderStatusID = uuid.New()
	}
	now := time.Now()
	if m.OrderStatusCreatedAt.IsZero() {
		m.OrderStatusCreatedAt = now
	}
	if m.OrderStatusUpdatedAt.IsZero() {
		m.OrderStatusUpdatedAt = now
	}
	if m.OrderStatusStatus == "" {
		m.OrderStatusStatus = StatusPendingUnsent
	}
	return nil
}

func (m *OrderStatusModel) BeforeUpdate(tx *gorm.DB) error {
	m.OrderStatusUpdatedAt = time.Now()
	return nil
}
