// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"
	paymentController "schoolpay_backend/internals/features/payments/controller"
	paymentRoutes "schoolpay_backend/internals/features/payments/route"
	authMiddleware "schoolpay_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.AppConfig) {
	ctrl := paymentController.NewPaymentController(db, cfg)

	api := app.Group("/api")

	// ===================== PUBLIC (gateway-facing) =====================
	log.Println("[INFO] Setting up public payment routes...")
	paymentRoutes.PublicPaymentRoutes(api, ctrl)

	// ===================== PROTECTED =====================
	log.Println("[INFO] Setting up protected payment routes...")
	protected := api.Group("/payments",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			AllowCookieFallback: true,
		}),
	)
	paymentRoutes.PaymentRoutes(protected, ctrl)
}
