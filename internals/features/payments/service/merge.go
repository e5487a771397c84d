// file: internals/features/payments/service/merge.go
package service

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"schoolpay_backend/internals/features/payments/model"
)

/* =========================================================
   Per-field merge of gateway payloads into an OrderStatus.

   Gateway payloads come in several near-duplicate dialects
   ("payemnt_details" vs "details", "Payment_message" vs
   "payment_message", nested "details.bank_ref", ...). Instead of one
   handler per dialect, every canonical field maps to an ordered list
   of accepted source keys; the first key present in the payload wins.
   Keys the payload does not mention never erase existing values.
========================================================= */

// statusAliases: canonical field -> accepted source keys, in priority
// order. Dotted keys descend into nested objects.
var statusAliases = map[string][]string{
	"status":             {"status"},
	"capture_status":     {"capture_status"},
	"order_amount":       {"order_amount", "amount"},
	"transaction_amount": {"transaction_amount", "order_amount", "amount"},
	"payment_mode":       {"payment_mode", "details.payment_mode"},
	"payment_details":    {"payment_details", "payemnt_details", "details"},
	"bank_reference":     {"bank_reference", "bank_ref", "details.bank_ref"},
	"payment_message":    {"payment_message", "Payment_message"},
	"error_message":      {"error_message"},
	"payment_time":       {"payment_time"},
}

// gatewayIDKeys: accepted names for the gateway collect id.
var gatewayIDKeys = []string{"order_id", "collect_request_id", "collect_id"}

// customOrderIDSentinel marks an absent custom order id on the wire.
const customOrderIDSentinel = "NA"

// OrderInfo unwraps the "order_info" envelope some payload variants
// carry; the payload itself is the order info otherwise.
func OrderInfo(payload map[string]interface{}) map[string]interface{} {
	if nested, ok := payload["order_info"].(map[string]interface{}); ok {
		return nested
	}
	return payload
}

// ExtractIdentifiers pulls the two candidate identifiers out of an
// order-info object. Either may be empty; "NA" counts as absent.
func ExtractIdentifiers(orderInfo map[string]interface{}) (gatewayCollectID, customOrderID string) {
	for _, key := range gatewayIDKeys {
		if v := stringAt(orderInfo, key); v != "" {
			gatewayCollectID = v
			break
		}
	}
	if v := stringAt(orderInfo, "custom_order_id"); v != "" && v != customOrderIDSentinel {
		customOrderID = v
	}
	return
}

// HasStatus reports whether the payload explicitly carries a status.
// Used to decide whether the webhook needs a fallback poll.
func HasStatus(orderInfo map[string]interface{}) bool {
	_, ok := lookup(orderInfo, "status")
	return ok
}

// ApplyPayload merges an order-info object into the status record,
// last-writer-wins per field. payment_time falls back to now whenever
// a merge happens without an explicit timestamp (original behavior:
// every webhook touch stamps the record).
func ApplyPayload(st *model.OrderStatusModel, orderInfo map[string]interface{}) {
	if v, ok := resolve(orderInfo, "status"); ok {
		if s := asString(v); s != "" {
			st.OrderStatusStatus = s
		}
	}
	if v, ok := resolve(orderInfo, "capture_status"); ok {
		if s := asString(v); s != "" {
			st.OrderStatusCaptureStatus = &s
		}
	}
	if v, ok := resolve(orderInfo, "order_amount"); ok {
		if f, ok := asFloat(v); ok {
			st.OrderStatusOrderAmount = f
		}
	}
	if v, ok := resolve(orderInfo, "transaction_amount"); ok {
		if f, ok := asFloat(v); ok {
			st.OrderStatusTransactionAmount = &f
		}
	}
	if v, ok := resolve(orderInfo, "payment_mode"); ok {
		if s := asString(v); s != "" {
			st.OrderStatusPaymentMode = &s
		}
	}
	if v, ok := resolve(orderInfo, "payment_details"); ok {
		if raw, err := sonic.Marshal(v); err == nil {
			st.OrderStatusPaymentDetails = datatypes.JSON(raw)
		}
	}
	if v, ok := resolve(orderInfo, "bank_reference"); ok {
		if s := asString(v); s != "" {
			st.OrderStatusBankReference = &s
		}
	}
	if v, ok := resolve(orderInfo, "payment_message"); ok {
		if s := asString(v); s != "" {
			st.OrderStatusPaymentMessage = &s
		}
	}
	if v, ok := resolve(orderInfo, "error_message"); ok {
		if s := asString(v); s != "" {
			st.OrderStatusErrorMessage = &s
		}
	}

	now := time.Now()
	if v, ok := resolve(orderInfo, "payment_time"); ok {
		if t, ok := asTime(v); ok {
			st.OrderStatusPaymentTime = &t
		} else {
			st.OrderStatusPaymentTime = &now
		}
	} else {
		st.OrderStatusPaymentTime = &now
	}
}

/* =========================================================
   lookup helpers
========================================================= */

// resolve walks the alias list for a canonical field and returns the
// first present value.
func resolve(orderInfo map[string]interface{}, canonical string) (interface{}, bool) {
	for _, key := range statusAliases[canonical] {
		if v, ok := lookup(orderInfo, key); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// lookup reads a possibly dotted key out of a nested object.
func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	parts := strings.Split(key, ".")
	cur := interface{}(m)
	for _, p := range parts {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func stringAt(m map[string]interface{}, key string) string {
	if v, ok := lookup(m, key); ok {
		return asString(v)
	}
	return ""
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		var f float64
		if err := sonic.Unmarshal([]byte(n), &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

func asTime(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
