// file: internals/features/payments/dto/payment_dto.go
package dto

import (
	"github.com/google/uuid"

	model "schoolpay_backend/internals/features/payments/model"
)

/* =========================================================
   CREATE
========================================================= */

type StudentInfo struct {
	Name  string `json:"name"  validate:"required"`
	ID    string `json:"id"    validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type CreatePaymentRequest struct {
	SchoolID      string       `json:"school_id"`
	TrusteeID     string       `json:"trustee_id"`
	StudentInfo   *StudentInfo `json:"student_info" validate:"required"`
	OrderAmount   float64      `json:"order_amount" validate:"required,gt=0"`
	CustomOrderID *string      `json:"custom_order_id"`
	RedirectURL   *string      `json:"redirect_url"`
}

// ToOrderModel builds the immutable order row. schoolID is the
// request's value or the configured default, decided by the caller.
func (r *CreatePaymentRequest) ToOrderModel(schoolID, gatewayName string) *model.OrderModel {
	m := &model.OrderModel{
		OrderSchoolID:    schoolID,
		OrderTrusteeID:   r.TrusteeID,
		OrderGatewayName: gatewayName,
	}
	if r.StudentInfo != nil {
		m.OrderStudentName = r.StudentInfo.Name
		m.OrderStudentID = r.StudentInfo.ID
		m.OrderStudentEmail = r.StudentInfo.Email
	}
	if r.CustomOrderID != nil && *r.CustomOrderID != "" {
		m.OrderCustomOrderID = r.CustomOrderID
	}
	return m
}

type CreatePaymentResponse struct {
	Message          string                 `json:"message"`
	OrderID          uuid.UUID              `json:"order_id"`
	LocalCollectID   uuid.UUID              `json:"local_collect_id"`
	GatewayCollectID string                 `json:"gateway_collect_id"`
	PaymentLink      string                 `json:"paymentLink"`
	RawResponse      map[string]interface{} `json:"rawResponse"`
}

/* =========================================================
   WEBHOOK / POLL
========================================================= */

type WebhookAck struct {
	Message string                  `json:"message"`
	Updated *model.OrderStatusModel `json:"updated"`
}

type StatusSyncResponse struct {
	Message         string                  `json:"message"`
	GatewayResponse map[string]interface{}  `json:"gatewayResponse"`
	Updated         *model.OrderStatusModel `json:"updated"`
}
