package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DATABASE", "foodtrack")
	t.Setenv("DB_USER", "foodtrack")
	t.Setenv("JWT_SECRET", "uncorruptedSecret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.EmailUnique)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "foodtrack.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "0")
	t.Setenv("EMAIL_UNIQUE", "false")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DB_CONNECTION_LIMIT", "not-a-number")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.JWTTTL)
	assert.False(t, cfg.EmailUnique)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.Equal(t, "https://app.example.com", cfg.CORSAllowOrigins)
}

func TestLoadRequired(t *testing.T) {
	t.Setenv("DB_DATABASE", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DATABASE")

	t.Setenv("DB_DATABASE", "foodtrack")
	t.Setenv("DB_USER", "foodtrack")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidateBcryptCost(t *testing.T) {
	cfg := &Config{DBType: "sqlite", DBDatabase: "x", JWTSecret: "s", BcryptCost: 2}
	assert.Error(t, cfg.Validate())

	cfg.BcryptCost = 4
	assert.NoError(t, cfg.Validate())
}
