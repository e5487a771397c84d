// file: internals/configs/config.go
package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

/* =======================
   ENV LOADER
======================= */

func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

/* =======================
   APP CONFIG
   Built once at bootstrap and passed into controllers/services,
   never read from the environment at request time.
======================= */

// GatewayConfig holds everything the sign generator and the gateway
// client need to talk to the collect-request API.
type GatewayConfig struct {
	SchoolID       string        // merchant school identifier
	PGKey          string        // shared secret for the HMAC sign
	APIKey         string        // bearer credential
	CreateEndpoint string        // create-collect-request URL
	StatusEndpoint string        // collect-request status base URL
	Timeout        time.Duration // per-call timeout
}

// Validate reports the configuration errors that make signing impossible.
// These are fatal at bootstrap, not recoverable mid-request.
func (g GatewayConfig) Validate() error {
	if g.SchoolID == "" {
		return errors.New("missing SCHOOL_ID in environment")
	}
	if g.PGKey == "" {
		return errors.New("missing PAYMENT_PG_KEY in environment")
	}
	return nil
}

type AppConfig struct {
	Gateway   GatewayConfig
	BaseURL   string // public base URL of this service, for default callback
	JWTSecret string
	Port      string
}

// LoadApp builds the AppConfig from the environment. Call after LoadEnv.
func LoadApp() AppConfig {
	timeout := 15 * time.Second
	if v := GetEnv("PAYMENT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	cfg := AppConfig{
		Gateway: GatewayConfig{
			SchoolID:       GetEnv("SCHOOL_ID"),
			PGKey:          GetEnv("PAYMENT_PG_KEY"),
			APIKey:         GetEnv("PAYMENT_API_KEY"),
			CreateEndpoint: GetEnv("PAYMENT_API_ENDPOINT"),
			StatusEndpoint: GetEnv("PAYMENT_API_ENDPOINT2"),
			Timeout:        timeout,
		},
		BaseURL:   GetEnv("BASE_URL", "http://localhost:3000"),
		JWTSecret: GetEnv("JWT_SECRET"),
		Port:      GetEnv("PORT", "3000"),
	}

	for _, kv := range []struct{ key, val string }{
		{"SCHOOL_ID", cfg.Gateway.SchoolID},
		{"PAYMENT_PG_KEY", cfg.Gateway.PGKey},
		{"PAYMENT_API_KEY", cfg.Gateway.APIKey},
		{"PAYMENT_API_ENDPOINT", cfg.Gateway.CreateEndpoint},
		{"PAYMENT_API_ENDPOINT2", cfg.Gateway.StatusEndpoint},
		{"JWT_SECRET", cfg.JWTSecret},
	} {
		if kv.val == "" {
			log.Printf("❌ %s is not set!", kv.key)
		} else {
			log.Printf("✅ %s loaded.", kv.key)
		}
	}

	return cfg
}

/* =======================
   GORM LOGGER CUSTOM
======================= */

type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Info,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
