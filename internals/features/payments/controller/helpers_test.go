package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"schoolpay_backend/internals/configs"
	"schoolpay_backend/internals/features/payments/model"
	helper "schoolpay_backend/internals/helpers"
	routes "schoolpay_backend/internals/route"
)

const (
	testSchoolID  = "school-1"
	testPGKey     = "test-pg-key"
	testJWTSecret = "test-jwt-secret"
)

// gatewayStub fakes the collect-request API. Handlers are swappable per
// test; nil handlers answer 500.
type gatewayStub struct {
	Server *httptest.Server

	CreateHandler http.HandlerFunc
	StatusHandler http.HandlerFunc

	CreateCalls int
	StatusCalls int
}

func newGatewayStub(t *testing.T) *gatewayStub {
	t.Helper()
	stub := &gatewayStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/create-collect-request":
			stub.CreateCalls++
			if stub.CreateHandler == nil {
				http.Error(w, `{"message":"gateway down"}`, http.StatusInternalServerError)
				return
			}
			stub.CreateHandler(w, r)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/collect-request/"):
			stub.StatusCalls++
			if stub.StatusHandler == nil {
				http.Error(w, `{"message":"gateway down"}`, http.StatusInternalServerError)
				return
			}
			stub.StatusHandler(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(stub.Server.Close)
	return stub
}

func (g *gatewayStub) RespondCreate(collectID, link string) {
	g.CreateHandler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"collect_request_id":  collectID,
			"collect_request_url": link,
			"sign":                "gw-sign",
		})
	}
}

func (g *gatewayStub) RespondStatus(body map[string]interface{}) {
	g.StatusHandler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, body)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// newTestApp wires the real routes against an in-memory sqlite DB and
// the gateway stub.
func newTestApp(t *testing.T, gw *gatewayStub) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}
	if err := db.AutoMigrate(&model.OrderModel{}, &model.OrderStatusModel{}, &model.WebhookLogModel{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := configs.AppConfig{
		Gateway: configs.GatewayConfig{
			SchoolID:       testSchoolID,
			PGKey:          testPGKey,
			APIKey:         "test-api-key",
			CreateEndpoint: gw.Server.URL + "/create-collect-request",
			StatusEndpoint: gw.Server.URL + "/collect-request",
			Timeout:        2 * time.Second,
		},
		BaseURL:   "http://localhost:3000",
		JWTSecret: testJWTSecret,
		Port:      "3000",
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})
	routes.SetupRoutes(app, db, cfg)
	return app, db
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "tester"}).
		SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("token sign failed: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func doRaw(t *testing.T, app *fiber.App, method, path string, body []byte) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path, token string) (*http.Response, []interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request GET %s failed: %v", path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var decoded []interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"trustee_id":   "trustee-1",
		"order_amount": 2000,
		"student_info": map[string]interface{}{
			"name":  "A",
			"id":    "1",
			"email": "a@x.com",
		},
	}
}
