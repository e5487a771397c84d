// file: internals/seeds/runner.go
package seeds

import (
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"
	payments "schoolpay_backend/internals/seeds/payments"
)

func RunAllSeeds(db *gorm.DB, cfg configs.AppConfig) {
	payments.SeedOrdersFromJSON(db, cfg.Gateway.SchoolID, "internals/seeds/payments/data_orders.json")
}
