package database

import (
	"database/sql"
	"fmt"

	"github.com/localnerve/foodtrack/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	mysqlBinaryCollation     = "utf8mb4_bin"
	sqlserverBinaryCollation = "Latin1_General_BIN2"
)

// uniqueName is a column whose values must match exactly, case included
type uniqueName struct {
	model  interface{}
	table  string
	column string
	field  string
	size   int
}

var uniqueNames = []uniqueName{
	{&models.User{}, "users", "username", "Username", 15},
	{&models.Food{}, "foods", "name", "Name", 255},
	{&models.Meal{}, "meals", "name", "Name", 255},
}

// BinaryCollation returns the binary collation for dialects whose default
// collation compares case-insensitively, or "" when the default is exact.
func BinaryCollation(dialect string) string {
	switch dialect {
	case "mysql":
		return mysqlBinaryCollation
	case "sqlserver":
		return sqlserverBinaryCollation
	}
	return ""
}

// alterCollation is the statement that moves a unique name column to the binary collation
func alterCollation(dialect string, n uniqueName) string {
	switch dialect {
	case "mysql":
		return fmt.Sprintf("ALTER TABLE `%s` MODIFY `%s` VARCHAR(%d) CHARACTER SET utf8mb4 COLLATE %s NOT NULL",
			n.table, n.column, n.size, mysqlBinaryCollation)
	case "sqlserver":
		return fmt.Sprintf(`ALTER TABLE "%s" ALTER COLUMN "%s" NVARCHAR(%d) COLLATE %s NOT NULL`,
			n.table, n.column, n.size, sqlserverBinaryCollation)
	}
	return ""
}

// currentCollation reads the collation of a column, "" if unknown
func currentCollation(db *gorm.DB, dialect string, n uniqueName) (string, error) {
	var collation sql.NullString
	var err error
	switch dialect {
	case "mysql":
		err = db.Raw(`SELECT COLLATION_NAME FROM information_schema.COLUMNS
			WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`, n.table, n.column).Scan(&collation).Error
	case "sqlserver":
		err = db.Raw(`SELECT collation_name FROM sys.columns
			WHERE object_id = OBJECT_ID(?) AND name = ?`, n.table, n.column).Scan(&collation).Error
	}
	if err != nil {
		return "", err
	}
	return collation.String, nil
}

// caseSensitiveNames moves the unique name columns to a binary collation on
// dialects that default to case-insensitive comparison. Already converted
// columns are left alone.
func caseSensitiveNames(db *gorm.DB) error {
	dialect := db.Dialector.Name()
	want := BinaryCollation(dialect)
	if want == "" {
		return nil
	}

	for _, n := range uniqueNames {
		current, err := currentCollation(db, dialect, n)
		if err != nil {
			return fmt.Errorf("failed to read collation of %s.%s: %w", n.table, n.column, err)
		}
		if current == want {
			continue
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			// SQL Server cannot change the collation of an indexed column
			if dialect == "sqlserver" && tx.Migrator().HasIndex(n.model, n.field) {
				if err := tx.Migrator().DropIndex(n.model, n.field); err != nil {
					return err
				}
			}
			if err := tx.Exec(alterCollation(dialect, n)).Error; err != nil {
				return err
			}
			if !tx.Migrator().HasIndex(n.model, n.field) {
				return tx.Migrator().CreateIndex(n.model, n.field)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to set collation of %s.%s: %w", n.table, n.column, err)
		}

		log.Info().Str("table", n.table).Str("column", n.column).Str("collation", want).Msg("Set binary collation")
	}
	return nil
}
