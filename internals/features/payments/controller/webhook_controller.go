// file: internals/features/payments/controller/webhook_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolpay_backend/internals/features/payments/dto"
	model "schoolpay_backend/internals/features/payments/model"
	svc "schoolpay_backend/internals/features/payments/service"
)

/* =======================================================================
   POST /api/webhook  (also mounted at /api/payments/webhook)

   Durability first: the raw body is persisted to webhook_logs before
   any interpretation, so malformed or rejected payloads stay
   recoverable. The log row is updated exactly once afterwards with the
   processing outcome.
======================================================================= */

func (h *PaymentController) HandleWebhook(c *fiber.Ctx) error {
	raw := c.Body()
	log.Printf("[WEBHOOK] received %d bytes", len(raw))

	entry := &model.WebhookLogModel{WebhookLogPayload: string(raw)}
	if err := h.DB.WithContext(c.Context()).Create(entry).Error; err != nil {
		// if the audit row cannot be written, nothing else should run
		return fiber.NewError(fiber.StatusInternalServerError, "webhook log write failed: "+err.Error())
	}

	var payload map[string]interface{}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		h.failWebhookLog(c, entry, "invalid json: "+err.Error())
		return fiber.NewError(fiber.StatusBadRequest, "invalid webhook payload: not json")
	}

	orderInfo := svc.OrderInfo(payload)
	gatewayCollectID, customOrderID := svc.ExtractIdentifiers(orderInfo)

	if gatewayCollectID == "" && customOrderID == "" {
		h.failWebhookLog(c, entry, "missing identifiers (collect_request_id/custom_order_id)")
		return fiber.NewError(fiber.StatusBadRequest, "invalid webhook payload: missing identifiers")
	}

	status, existed, err := h.findStatusByIdentifiers(c, gatewayCollectID, customOrderID)
	if err != nil {
		h.failWebhookLog(c, entry, err.Error())
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	svc.ApplyPayload(status, orderInfo)

	// fallback poll: a payload naming a collect request without telling
	// its status is resolved against the gateway directly
	if gatewayCollectID != "" && !svc.HasStatus(orderInfo) {
		if sign, signErr := h.Signer.SignForStatus(gatewayCollectID); signErr != nil {
			log.Printf("[WARN] fallback poll sign failed (collect=%s): %v", gatewayCollectID, signErr)
		} else if data, pollErr := h.Gateway.FetchStatus(c.Context(), gatewayCollectID, sign); pollErr != nil {
			log.Printf("[WARN] fallback poll failed (collect=%s): %v", gatewayCollectID, pollErr)
		} else {
			svc.ApplyPayload(status, data)
		}
	}

	var saveErr error
	if existed {
		saveErr = h.DB.WithContext(c.Context()).Save(status).Error
	} else {
		saveErr = h.DB.WithContext(c.Context()).Create(status).Error
	}
	if saveErr != nil {
		h.failWebhookLog(c, entry, saveErr.Error())
		return fiber.NewError(fiber.StatusInternalServerError, "save order status failed: "+saveErr.Error())
	}

	entry.WebhookLogProcessed = true
	entry.WebhookLogError = nil
	if err := h.DB.WithContext(c.Context()).Save(entry).Error; err != nil {
		log.Printf("[ERROR] webhook log update failed: %v", err)
	}

	return c.JSON(dto.WebhookAck{
		Message: "Webhook processed",
		Updated: status,
	})
}

// findStatusByIdentifiers resolves the status row for a webhook.
// Candidate identifiers are tried in a fixed order: the gateway collect
// id wins over the caller-supplied custom order id, because the gateway
// assigns the former and a caller cannot forge it. When neither matches,
// a late-bound status is built, resolving the order reference by
// internal-id shape or custom order id when possible.
func (h *PaymentController) findStatusByIdentifiers(c *fiber.Ctx, gatewayCollectID, customOrderID string) (*model.OrderStatusModel, bool, error) {
	var status model.OrderStatusModel

	if gatewayCollectID != "" {
		err := h.DB.WithContext(c.Context()).
			Where("order_status_gateway_collect_id = ?", gatewayCollectID).
			Order("order_status_created_at DESC").
			First(&status).Error
		if err == nil {
			return &status, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}
	if customOrderID != "" {
		err := h.DB.WithContext(c.Context()).
			Where("order_status_custom_order_id = ?", customOrderID).
			Order("order_status_created_at DESC").
			First(&status).Error
		if err == nil {
			return &status, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	// late-bound status
	fresh := model.OrderStatusModel{}
	if gatewayCollectID != "" {
		fresh.OrderStatusGatewayCollectID = &gatewayCollectID
	}
	if customOrderID != "" {
		fresh.OrderStatusCustomOrderID = &customOrderID
	}

	var order *model.OrderModel
	if id, err := uuid.Parse(gatewayCollectID); gatewayCollectID != "" && err == nil {
		var o model.OrderModel
		if h.DB.WithContext(c.Context()).First(&o, "order_id = ?", id).Error == nil {
			order = &o
		}
	}
	if order == nil && customOrderID != "" {
		var o model.OrderModel
		if h.DB.WithContext(c.Context()).First(&o, "order_custom_order_id = ?", customOrderID).Error == nil {
			order = &o
		}
	}
	if order != nil {
		fresh.OrderStatusOrderID = &order.OrderID
	}

	return &fresh, false, nil
}

func (h *PaymentController) failWebhookLog(c *fiber.Ctx, entry *model.WebhookLogModel, msg string) {
	entry.WebhookLogProcessed = false
	entry.WebhookLogError = &msg
	if err := h.DB.WithContext(c.Context()).Save(entry).Error; err != nil {
		log.Printf("[ERROR] webhook log update failed: %v", err)
	}
}
