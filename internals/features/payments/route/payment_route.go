// file: internals/features/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_backend/internals/features/payments/controller"
)

// PublicPaymentRoutes: endpoints the gateway (or an operator without a
// session) calls without a bearer token.
func PublicPaymentRoutes(api fiber.Router, ctrl *controller.PaymentController) {
	// second public mount, kept for gateway configs pointing at /api/webhook
	api.Post("/webhook", ctrl.HandleWebhook)
	api.Post("/payments/webhook", ctrl.HandleWebhook)
	api.Get("/payments/check-status/:collectId", ctrl.CheckPaymentStatus)
}

// PaymentRoutes: bearer-protected API surface.
func PaymentRoutes(protected fiber.Router, ctrl *controller.PaymentController) {
	protected.Post("/create-payment", ctrl.CreatePayment)
	protected.Get("/status/:custom_order_id", ctrl.GetTransactionStatus)
	protected.Get("/transactions", ctrl.GetAllTransactions)
	protected.Get("/transactions/school/:schoolId", ctrl.GetTransactionsBySchool)
}
