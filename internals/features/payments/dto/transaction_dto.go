// file: internals/features/payments/dto/transaction_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   Transaction listing projections
   order_statuses LEFT JOINed with orders: a status with no
   resolvable order still appears, with null school-derived fields.
========================================================= */

type TransactionRow struct {
	CollectID         uuid.UUID  `json:"collect_id"         gorm:"column:order_status_id"`
	OrderID           *uuid.UUID `json:"order_id"           gorm:"column:order_status_order_id"`
	SchoolID          *string    `json:"school_id"          gorm:"column:order_school_id"`
	Gateway           *string    `json:"gateway"            gorm:"column:order_gateway_name"`
	CustomOrderID     *string    `json:"custom_order_id"    gorm:"column:order_status_custom_order_id"`
	GatewayCollectID  *string    `json:"gateway_collect_id" gorm:"column:order_status_gateway_collect_id"`
	OrderAmount       float64    `json:"order_amount"       gorm:"column:order_status_order_amount"`
	TransactionAmount *float64   `json:"transaction_amount" gorm:"column:order_status_transaction_amount"`
	Status            string     `json:"status"             gorm:"column:order_status_status"`
	PaymentTime       *time.Time `json:"payment_time"       gorm:"column:order_status_payment_time"`
}

type PaginatedTransactions struct {
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"totalPages"`
	Data       []TransactionRow `json:"data"`
}
