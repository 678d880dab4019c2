// Package store persists users, their diary ledgers and the food catalog with GORM.
// Every mutation is either a single statement or a single transaction, so callers
// never observe a read-modify-write window.
package store

import (
	"context"
	"errors"

	"github.com/localnerve/foodtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store is the GORM backed persistence layer
type Store struct {
	db *gorm.DB
}

// New creates a Store over an open connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) quiet(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Session(&gorm.Session{Logger: s.db.Logger.LogMode(logger.Silent)})
}

// forUpdate row locks the selected record where the dialect supports it.
// SQLite ignores the clause; SQL Server has no FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlserver" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// notFoundOr converts gorm.ErrRecordNotFound to a NotFound error and anything
// else to a Storage error. Domain errors pass through untouched.
func notFoundOr(err error, op, format string, args ...interface{}) error {
	var domainErr *types.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.NotFound(format, args...)
	}
	return types.Storage(op, err)
}
