package database

import (
	"fmt"
	"os"
	"testing"
	"time"

	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/model"
	timeprovider "github.com/cashfolio/cashfolio/internal/infrastructure/adapter/time"
	"gorm.io/gorm"
)

// TestDBManager provides utilities for integration tests against a real database
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager creates a new test database manager
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	timeProvider := timeprovider.NewRealTimeProvider()

	config := &Config{
		Driver:          "postgres",
		Host:            getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:            getEnvIntOrDefault("TEST_DB_PORT", 5432),
		Username:        getEnvOrDefault("TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("TEST_DB_DATABASE", "cashfolio_test"),
		SSLMode:         getEnvOrDefault("TEST_DB_SSL_MODE", "disable"),
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1, // fail fast in tests
		RetryDelay:      1,
	}

	manager := NewManager(config, logger, timeProvider)

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// Connect connects to the test database
func (m *TestDBManager) Connect(t *testing.T) error {
	t.Helper()

	db, err := m.Manager.Connect()
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
		return err
	}

	m.Manager.db = db
	return nil
}

// Close closes the test database connection
func (m *TestDBManager) Close(t *testing.T) {
	t.Helper()

	if err := m.Manager.Close(); err != nil {
		t.Logf("Warning: Failed to close test database connection: %v", err)
	}
}

// SetupTestDB sets up the test database with required tables
func (m *TestDBManager) SetupTestDB(t *testing.T) {
	t.Helper()

	db := m.Manager.DB()

	if err := dropAllTables(db); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}

	if err := db.AutoMigrate(
		&model.BankAccount{},
		&model.Card{},
		&model.Transaction{},
		&model.Budget{},
		&model.Subscription{},
		&model.RecurringIncome{},
		&model.Invoice{},
	); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
}

// dropAllTables drops all tables in the test database
func dropAllTables(db *gorm.DB) error {
	return db.Exec(`
		DO $$ DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`).Error
}

// TruncateAllTables truncates all tables in the test database
func (m *TestDBManager) TruncateAllTables(t *testing.T) {
	t.Helper()

	db := m.Manager.DB()

	if err := db.Exec(`
		DO $$ DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
				EXECUTE 'TRUNCATE TABLE ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`).Error; err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// CreateTestAccount creates a bank account row with the given balance
func (m *TestDBManager) CreateTestAccount(t *testing.T, userID uint64, balanceCents int64) uint64 {
	t.Helper()

	db := m.Manager.DB()

	account := model.BankAccount{
		UserID:       userID,
		Name:         fmt.Sprintf("test account %d", userID),
		BalanceCents: balanceCents,
		Currency:     "CHF",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return account.ID
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
