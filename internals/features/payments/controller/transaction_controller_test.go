package controller_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"schoolpay_backend/internals/features/payments/model"
)

func seedTransaction(t *testing.T, db *gorm.DB, schoolID, customID, status string, amount float64, paymentTime time.Time) (model.OrderModel, model.OrderStatusModel) {
	t.Helper()

	order := model.OrderModel{
		OrderSchoolID:      schoolID,
		OrderCustomOrderID: &customID,
		OrderGatewayName:   "edviron",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	st := model.OrderStatusModel{
		OrderStatusOrderID:       &order.OrderID,
		OrderStatusCustomOrderID: &customID,
		OrderStatusOrderAmount:   amount,
		OrderStatusStatus:        status,
		OrderStatusPaymentTime:   &paymentTime,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed status: %v", err)
	}
	return order, st
}

func TestGetAllTransactionsPagination(t *testing.T) {
	gw := newGatewayStub(t)
	app, db := newTestApp(t, gw)

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 25; i++ {
		seedTransaction(t, db, testSchoolID, fmt.Sprintf("CUST-%02d", i), "success",
			float64(i), base.Add(time.Duration(i)*time.Minute))
	}

	resp, body := doJSON(t, app, http.MethodGet,
		"/api/payments/transactions?limit=10&page=2&sort=order_amount&order=asc", bearerToken(t), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d (body: %v)", resp.StatusCode, body)
	}

	if body["total"] != float64(25) {
		t.Errorf("total = %v, want 25", body["total"])
	}
	if body["totalPages"] != float64(3) {
		t.Errorf("totalPages = %v, want 3", body["totalPages"])
	}
	if body["page"] != float64(2) {
		t.Errorf("page = %v, want 2", body["page"])
	}

	rows, ok := body["data"].([]interface{})
	if !ok || len(rows) != 10 {
		t.Fatalf("data length = %d, want 10", len(rows))
	}
	firstRow := rows[0].(map[string]interface{})
	lastRow := rows[9].(map[string]interface{})
	if firstRow["order_amount"] != float64(11) || lastRow["order_amount"] != float64(20) {
		t.Errorf("page 2 spans amounts %v..%v, want 11..20", firstRow["order_amount"], lastRow["order_amount"])
	}
}

func TestGetAllTransactionsIncludesOrphanStatuses(t *testing.T) {
	gw := newGatewayStub(t)
	app, db := newTestApp(t, gw)

	seedTransaction(t, db, testSchoolID, "CUST-1", "success", 100, time.Now())

	// late-bound status: no order reference at all
	collectID := "COLL-ORPHAN"
	now := time.Now()
	orphan := model.OrderStatusModel{
		OrderStatusGatewayCollectID: &collectID,
		OrderStatusStatus:           model.StatusPending,
		OrderStatusPaymentTime:      &now,
	}
	if err := db.Create(&orphan).Error; err != nil {
		t.Fatal(err)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/payments/transactions", bearerToken(t), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	rows := body["data"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (orphan status must appear)", len(rows))
	}

	foundOrphan := false
	for _, r := range rows {
		row := r.(map[string]interface{})
		if row["gateway_collect_id"] == "COLL-ORPHAN" {
			foundOrphan = true
			if row["school_id"] != nil {
				t.Errorf("orphan school_id = %v, want null", row["school_id"])
			}
		}
	}
	if !foundOrphan {
		t.Error("orphan status missing from the global listing")
	}
}

func TestGetAllTransactionsStatusFilterMatchesPendingSubStates(t *testing.T) {
	gw := newGatewayStub(t)
	app, db := newTestApp(t, gw)

	seedTransaction(t, db, testSchoolID, "CUST-1", model.StatusPending, 100, time.Now())
	seedTransaction(t, db, testSchoolID, "CUST-2", model.StatusPendingUnsent, 200, time.Now())
	seedTransaction(t, db, testSchoolID, "CUST-3", "success", 300, time.Now())

	resp, body := doJSON(t, app, http.MethodGet, "/api/payments/transactions?status=pending", bearerToken(t), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	rows := body["data"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("pending filter rows = %d, want 2 (both pending sub-states)", len(rows))
	}
}

func TestGetTransactionsBySchool(t *testing.T) {
	gw := newGatewayStub(t)
	app, db := newTestApp(t, gw)

	seedTransaction(t, db, "school-1", "CUST-A", "success", 100, time.Now())
	seedTransaction(t, db, "school-2", "CUST-B", "success", 200, time.Now())

	// orphan: must never leak into a school listing
	collectID := "COLL-ORPHAN"
	orphan := model.OrderStatusModel{
		OrderStatusGatewayCollectID: &collectID,
		OrderStatusStatus:           model.StatusPending,
	}
	if err := db.Create(&orphan).Error; err != nil {
		t.Fatal(err)
	}

	resp, rows := doJSONList(t, app, "/api/payments/transactions/school/school-1", bearerToken(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(rows) != 1 {
		t.Fatalf("school-1 rows = %d, want 1", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["custom_order_id"] != "CUST-A" {
		t.Errorf("row = %v, want CUST-A", row["custom_order_id"])
	}
}

func TestGetTransactionStatusByCustomOrderID(t *testing.T) {
	gw := newGatewayStub(t)
	app, db := newTestApp(t, gw)

	_, older := seedTransaction(t, db, testSchoolID, "CUST-DUP", "pending", 100, time.Now().Add(-time.Hour))
	// duplicate custom id on the status table (tolerated): latest wins
	customID := "CUST-DUP"
	newer := model.OrderStatusModel{
		OrderStatusCustomOrderID: &customID,
		OrderStatusStatus:        "success",
		OrderStatusOrderAmount:   100,
		OrderStatusCreatedAt:     older.OrderStatusCreatedAt.Add(time.Minute),
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatal(err)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/payments/status/CUST-DUP", bearerToken(t), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "success" {
		t.Errorf("returned status = %v, want the most recent record", body["status"])
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/payments/status/NOPE", bearerToken(t), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown custom id: status = %d, want 404", resp.StatusCode)
	}
}
