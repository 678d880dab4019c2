package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/foodtrack/internal/config"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every dependency answered
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the database within a short deadline
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		logger.Error().Err(err).Msg("Health check failed - database connection")
		return result
	}

	pingCtx, cancel := context.WithTimeout(ctx, 1500*time.Millisecond)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		logger.Error().Err(err).Msg("Health check failed - database ping")
		return result
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase
	logger.Debug().Msg("Health check passed - all systems operational")

	return result
}
