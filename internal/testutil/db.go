// Package testutil holds helpers shared by the package tests and the devdb command.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/foodtrack/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
// Each call gets its own database, so tests can run in parallel.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Open(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// A single connection keeps the in-memory database alive and serializes writers
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}
