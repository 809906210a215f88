package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3005", cfg.Server.Port)
	assert.Equal(t, "", cfg.Server.APIPrefix)
	assert.Equal(t, 5*time.Second, cfg.Query.Timeout)
	assert.Equal(t, 200, cfg.Query.DefaultLimit)
	assert.Equal(t, 500, cfg.Query.MaxLimit)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "@every 1m", cfg.Monitor.Schedule)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("API_PREFIX", "/api/")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("QUERY_TIMEOUT", "750ms")
	t.Setenv("QUERY_DEFAULT_LIMIT", "50")
	t.Setenv("QUERY_MAX_LIMIT", "100")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 750*time.Millisecond, cfg.Query.Timeout)
	assert.Equal(t, 50, cfg.Query.DefaultLimit)
	assert.Equal(t, 100, cfg.Query.MaxLimit)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidLimits(t *testing.T) {
	t.Setenv("QUERY_DEFAULT_LIMIT", "300")
	t.Setenv("QUERY_MAX_LIMIT", "100")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("QUERY_TIMEOUT", "soon")
	t.Setenv("DB_MAX_IDLE_CONNS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Query.Timeout)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "catalog", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=catalog sslmode=disable", c.DSN())
}
