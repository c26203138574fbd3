package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("USERS_REQUIRE_AUTH", "")

	cfg := LoadConfig()

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.UsersRequireAuth)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("USERS_REQUIRE_AUTH", "true")
	t.Setenv("AUTH_RATE_LIMIT", "3")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.UsersRequireAuth)
	assert.Equal(t, 3, cfg.AuthRateLimit)
}

func TestGetEnvAsInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_MIN", "soon")
	assert.Equal(t, 15, getEnvAsInt("JWT_EXPIRY_MIN", 15))
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433", DBSSLMode: "require"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", cfg.DSN())
}
