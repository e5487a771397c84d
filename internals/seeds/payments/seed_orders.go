// file: internals/seeds/payments/seed_orders.go
package payments

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"schoolpay_backend/internals/features/payments/model"
)

type orderSeed struct {
	TrusteeID     string  `json:"trustee_id"`
	CustomOrderID string  `json:"custom_order_id"`
	StudentName   string  `json:"student_name"`
	StudentID     string  `json:"student_id"`
	StudentEmail  string  `json:"student_email"`
	OrderAmount   float64 `json:"order_amount"`
	Status        string  `json:"status"`
	PaymentMode   string  `json:"payment_mode"`
	BankReference string  `json:"bank_reference"`
}

// SeedOrdersFromJSON loads demo orders + statuses. Existing
// custom_order_ids are skipped, so the seed is re-runnable.
func SeedOrdersFromJSON(db *gorm.DB, schoolID, filePath string) {
	log.Println("📥 Reading order seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Could not read seed file: %v", err)
		return
	}

	var inputs []orderSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Could not decode seed JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.OrderModel
		if err := db.Where("order_custom_order_id = ?", data.CustomOrderID).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Order '%s' already exists, skipping.", data.CustomOrderID)
			continue
		}

		customID := data.CustomOrderID
		order := model.OrderModel{
			OrderSchoolID:      schoolID,
			OrderTrusteeID:     data.TrusteeID,
			OrderCustomOrderID: &customID,
			OrderStudentName:   data.StudentName,
			OrderStudentID:     data.StudentID,
			OrderStudentEmail:  data.StudentEmail,
			OrderGatewayName:   "edviron",
		}
		if err := db.Create(&order).Error; err != nil {
			log.Printf("❌ Could not create order '%s': %v", data.CustomOrderID, err)
			continue
		}

		now := time.Now()
		amount := data.OrderAmount
		mode := data.PaymentMode
		ref := data.BankReference
		status := model.OrderStatusModel{
			OrderStatusOrderID:           &order.OrderID,
			OrderStatusCustomOrderID:     &customID,
			OrderStatusOrderAmount:       amount,
			OrderStatusTransactionAmount: &amount,
			OrderStatusStatus:            data.Status,
			OrderStatusPaymentMode:       &mode,
			OrderStatusBankReference:     &ref,
			OrderStatusPaymentTime:       &now,
		}
		if err := db.Create(&status).Error; err != nil {
			log.Printf("❌ Could not create order status '%s': %v", data.CustomOrderID, err)
			continue
		}

		log.Printf("✅ Seeded order '%s' (%s)", data.CustomOrderID, data.Status)
	}
}
