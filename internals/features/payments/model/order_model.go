// file: internals/features/payments/model/order_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ================================
   MODEL: orders
   Static context of a payment intent. Written once at creation,
   never mutated afterwards.
================================ */

type OrderModel struct {
	OrderID uuid.UUID `json:"order_id" gorm:"column:order_id;type:uuid;primaryKey"`

	OrderSchoolID  string `json:"school_id"  gorm:"column:order_school_id;type:varchar(64);index"`
	OrderTrusteeID string `json:"trustee_id" gorm:"column:order_trustee_id;type:varchar(64)"`

	// caller-supplied correlation key, unique when present
	OrderCustomOrderID *string `json:"custom_order_id" gorm:"column:order_custom_order_id;type:varchar(120);uniqueIndex"`

	// student info (embedded in the original schema, flattened here)
	OrderStudentName  string `json:"student_name"  gorm:"column:order_student_name;type:varchar(120)"`
	OrderStudentID    string `json:"student_id"    gorm:"column:order_student_id;type:varchar(64)"`
	OrderStudentEmail string `json:"student_email" gorm:"column:order_student_email;type:varchar(255)"`

	OrderGatewayName string `json:"gateway_name" gorm:"column:order_gateway_name;type:varchar(64)"`

	OrderCreatedAt time.Time `json:"created_at" gorm:"column:order_created_at;not null"`
}

func (OrderModel) TableName() string { return "orders" }

// Ids and timestamps are generated app-side, so the schema stays
// portable across the Postgres and sqlite drivers.
func (m *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.OrderID == uuid.Nil {
		m.OrderID = uuid.New()
	}
	if m.OrderCreatedAt.IsZero() {
		m.OrderCreatedAt = time.Now()
	}
	return nil
}
