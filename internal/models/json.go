package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// RefList is an ordered list of record ids stored as a JSON column
type RefList []string

// Value delegates to datatypes.JSONSlice
func (r RefList) Value() (driver.Value, error) {
	if r == nil {
		r = RefList{}
	}
	return datatypes.JSONSlice[string](r).Value()
}

// Scan delegates to datatypes.JSONSlice
func (r *RefList) Scan(value interface{}) error {
	var s datatypes.JSONSlice[string]
	if err := s.Scan(value); err != nil {
		return err
	}
	*r = RefList(s)
	return nil
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (RefList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
