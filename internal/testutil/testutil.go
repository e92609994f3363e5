// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/infrastructure/config"
	"census-otp-service/internal/infrastructure/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "census_test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// TestConfig returns a config suitable for in-process tests
func TestConfig() *config.Config {
	return &config.Config{
		EnvType:         "LOCAL",
		DBDriver:        config.DriverSQLite,
		DBMigrationMode: "auto",
		DBLogLevel:      "silent",
		ServerPort:      "0",
		CORSAllowOrigin: "*",
		CacheTTL:        time.Minute,
		OTPDelivery:     config.DeliveryLog,
		OTPOutboxTTL:    time.Minute,
		JWTSecretKey:    "test-secret",
		JWTTTL:          time.Hour,
	}
}

// SentOTP is one code handed to CaptureSender
type SentOTP struct {
	MobileNumber string
	Code         string
}

// CaptureSender records delivered codes instead of sending them
type CaptureSender struct {
	mu   sync.Mutex
	sent []SentOTP
	Err  error // returned from Send when set
}

// Send records the code unless Err is set
func (s *CaptureSender) Send(_ context.Context, account *models.Account, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, SentOTP{MobileNumber: account.MobileNumber, Code: code})
	return nil
}

// Last returns the most recent code sent to mobileNumber
func (s *CaptureSender) Last(mobileNumber string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.sent) - 1; i >= 0; i-- {
		if s.sent[i].MobileNumber == mobileNumber {
			return s.sent[i].Code, true
		}
	}
	return "", false
}

// Count returns how many codes were sent
func (s *CaptureSender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
