// file: internals/features/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"
	dto "schoolpay_backend/internals/features/payments/dto"
	model "schoolpay_backend/internals/features/payments/model"
	svc "schoolpay_backend/internals/features/payments/service"
	helper "schoolpay_backend/internals/helpers"
)

// GatewayName identifies the collect-request provider on order rows.
const GatewayName = "edviron"

/* =======================================================================
   Controller
======================================================================= */

type PaymentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Cfg       configs.AppConfig
	Signer    *svc.SignGenerator
	Gateway   *svc.GatewayClient
}

func NewPaymentController(db *gorm.DB, cfg configs.AppConfig) *PaymentController {
	return &PaymentController{
		DB:        db,
		Validator: validator.New(),
		Cfg:       cfg,
		Signer:    svc.NewSignGenerator(cfg.Gateway),
		Gateway:   svc.NewGatewayClient(cfg.Gateway),
	}
}

/* =======================================================================
   POST /api/payments/create-payment

   Order and pending status are persisted BEFORE the gateway call, so a
   status row exists even when the gateway is down. A row stranded by a
   failed gateway call stays in "pending_unsent"; a successful call
   promotes it to "pending" with the gateway collect id attached.
======================================================================= */

func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	schoolID := req.SchoolID
	if schoolID == "" {
		schoolID = h.Cfg.Gateway.SchoolID
	}

	// 1) immutable order row
	order := req.ToOrderModel(schoolID, GatewayName)
	if err := h.DB.WithContext(c.Context()).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "custom_order_id already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "create order failed: "+err.Error())
	}

	// 2) pending status row, before any gateway traffic
	orderID := order.OrderID
	status := &model.OrderStatusModel{
		OrderStatusOrderID:       &orderID,
		OrderStatusCustomOrderID: order.OrderCustomOrderID,
		OrderStatusOrderAmount:   req.OrderAmount,
		OrderStatusStatus:        model.StatusPendingUnsent,
	}
	if err := h.DB.WithContext(c.Context()).Create(status).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "create order status failed: "+err.Error())
	}

	// 3) sign + collect request
	callbackURL := h.Cfg.BaseURL + "/api/webhook"
	if req.RedirectURL != nil && *req.RedirectURL != "" {
		callbackURL = *req.RedirectURL
	}
	amount := strconv.FormatFloat(req.OrderAmount, 'f', -1, 64)

	sign, err := h.Signer.SignForCreate(amount, callbackURL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "sign generation failed: "+err.Error())
	}

	resp, err := h.Gateway.CreateCollectRequest(c.Context(), amount, callbackURL, sign)
	if err != nil {
		// known inconsistency window: the pending_unsent row stays
		log.Printf("[ERROR] create collect request failed (order=%s): %v", order.OrderID, err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// 4) attach gateway identity + raw response, promote to pending
	status.OrderStatusGatewayCollectID = &resp.CollectRequestID
	status.OrderStatusStatus = model.StatusPending
	if raw, err := marshalJSON(resp.Raw); err == nil {
		status.OrderStatusPaymentDetails = raw
	}
	if err := h.DB.WithContext(c.Context()).Save(status).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "update order status failed: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatePaymentResponse{
		Message:          "Payment created",
		OrderID:          order.OrderID,
		LocalCollectID:   status.OrderStatusID,
		GatewayCollectID: resp.CollectRequestID,
		PaymentLink:      resp.CollectRequestURL,
		RawResponse:      resp.Raw,
	})
}

/* =======================================================================
   GET /api/payments/check-status/:collectId

   Manual poll: asks the gateway for authoritative status and upserts
   the status row keyed by gateway_collect_id.
======================================================================= */

func (h *PaymentController) CheckPaymentStatus(c *fiber.Ctx) error {
	collectID := c.Params("collectId")
	if collectID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "collectId required")
	}

	sign, err := h.Signer.SignForStatus(collectID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "sign generation failed: "+err.Error())
	}

	data, err := h.Gateway.FetchStatus(c.Context(), collectID, sign)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	status, err := h.upsertStatusByCollectID(c, collectID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	svc.ApplyPayload(status, data)
	if err := h.DB.WithContext(c.Context()).Save(status).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "save order status failed: "+err.Error())
	}

	return c.JSON(dto.StatusSyncResponse{
		Message:         "Status synced with gateway",
		GatewayResponse: data,
		Updated:         status,
	})
}

// upsertStatusByCollectID loads the status row for a gateway collect id,
// creating a fresh one when none exists yet. A collect id that happens
// to parse as an internal order id also binds the order reference.
func (h *PaymentController) upsertStatusByCollectID(c *fiber.Ctx, collectID string) (*model.OrderStatusModel, error) {
	var status model.OrderStatusModel
	err := h.DB.WithContext(c.Context()).
		Where("order_status_gateway_collect_id = ?", collectID).
		Order("order_status_created_at DESC").
		First(&status).Error
	if err == nil {
		return &status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := model.OrderStatusModel{
		OrderStatusGatewayCollectID: &collectID,
		OrderStatusStatus:           model.StatusPending,
	}
	if id, parseErr := uuid.Parse(collectID); parseErr == nil {
		var order model.OrderModel
		if h.DB.WithContext(c.Context()).First(&order, "order_id = ?", id).Error == nil {
			fresh.OrderStatusOrderID = &order.OrderID
			fresh.OrderStatusCustomOrderID = order.OrderCustomOrderID
		}
	}
	if err := h.DB.WithContext(c.Context()).Create(&fresh).Error; err != nil {
		return nil, fmt.Errorf("create order status failed: %w", err)
	}
	return &fresh, nil
}

func marshalJSON(v interface{}) (datatypes.JSON, error) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
