// file: internals/features/payments/controller/transaction_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "schoolpay_backend/internals/features/payments/dto"
	model "schoolpay_backend/internals/features/payments/model"
	helper "schoolpay_backend/internals/helpers"
)

/* =======================================================================
   Read-only transaction queries
   order_statuses joined with orders. The join is LEFT for the global
   listing (late-bound statuses still show, school fields null) and
   INNER for the per-school listing.
======================================================================= */

// sortableColumns whitelists ?sort= values; anything else falls back to
// payment time.
var sortableColumns = map[string]string{
	"payment_time":       "order_statuses.order_status_payment_time",
	"order_amount":       "order_statuses.order_status_order_amount",
	"transaction_amount": "order_statuses.order_status_transaction_amount",
	"status":             "order_statuses.order_status_status",
	"custom_order_id":    "order_statuses.order_status_custom_order_id",
	"created_at":         "order_statuses.order_status_created_at",
	"school_id":          "orders.order_school_id",
}

const transactionColumns = `order_statuses.order_status_id,
order_statuses.order_status_order_id,
orders.order_school_id,
orders.order_gateway_name,
order_statuses.order_status_custom_order_id,
order_statuses.order_status_gateway_collect_id,
order_statuses.order_status_order_amount,
order_statuses.order_status_transaction_amount,
order_statuses.order_status_status,
order_statuses.order_status_payment_time`

// GET /api/payments/transactions
func (h *PaymentController) GetAllTransactions(c *fiber.Ctx) error {
	p := helper.ParsePagination(c, "payment_time", "desc")

	sortCol, ok := sortableColumns[p.SortBy]
	if !ok {
		sortCol = sortableColumns["payment_time"]
	}

	base := h.DB.WithContext(c.Context()).
		Table("order_statuses").
		Joins("LEFT JOIN orders ON orders.order_id = order_statuses.order_status_order_id")

	if status := c.Query("status"); status != "" {
		if status == model.StatusPending {
			// any pending sub-state counts as pending
			base = base.Where("order_statuses.order_status_status LIKE ?", model.StatusPending+"%")
		} else {
			base = base.Where("order_statuses.order_status_status = ?", status)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []dto.TransactionRow
	if err := base.
		Select(transactionColumns).
		Order(sortCol + " " + p.SortOrder).
		Offset(p.Offset()).
		Limit(p.Limit).
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dto.PaginatedTransactions{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: helper.TotalPages(total, p.Limit),
		Data:       rows,
	})
}

// GET /api/payments/transactions/school/:schoolId
func (h *PaymentController) GetTransactionsBySchool(c *fiber.Ctx) error {
	schoolID := c.Params("schoolId")
	if schoolID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "schoolId required")
	}

	var rows []dto.TransactionRow
	if err := h.DB.WithContext(c.Context()).
		Table("order_statuses").
		Joins("JOIN orders ON orders.order_id = order_statuses.order_status_order_id").
		Where("orders.order_school_id = ?", schoolID).
		Select(transactionColumns).
		Order("order_statuses.order_status_payment_time DESC").
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(rows)
}

// GET /api/payments/status/:custom_order_id
// Most recent status when duplicates exist.
func (h *PaymentController) GetTransactionStatus(c *fiber.Ctx) error {
	customOrderID := c.Params("custom_order_id")
	if customOrderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "custom_order_id required")
	}

	var status model.OrderStatusModel
	err := h.DB.WithContext(c.Context()).
		Where("order_status_custom_order_id = ?", customOrderID).
		Order("order_status_created_at DESC").
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(&status)
}
