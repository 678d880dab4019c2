// connection.go
//
// A nutrition tracking data service with a shared food catalog
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of foodtrack.
// foodtrack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// foodtrack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with foodtrack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/foodtrack/internal/config"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector builds the gorm dialector for the configured DB_TYPE
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			cfg.DBPort,
		)
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite, DBDatabase is the file path
		return sqlite.Open(cfg.DBDatabase), nil

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		return sqlserver.Open(dsn), nil
	}

	return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
}

// Connect establishes a database connection based on the configured DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(max(cfg.DBConnectionLimit/2, 1))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Str("type", cfg.DBType).Str("database", cfg.DBDatabase).Msg("Connected to database")

	return db, nil
}

// Open opens a gorm connection with the settings the store relies on.
// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ParseLogLevel maps a DB_LOG_LEVEL string to a gorm log level
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// AutoMigrate runs automatic migrations for all models.
// Usernames and catalog names compare exactly on every dialect.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.SavedMeal{},
		&models.DiaryEntry{},
		&models.Food{},
		&models.Meal{},
	)
	if err != nil {
		return err
	}
	return caseSensitiveNames(db)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
