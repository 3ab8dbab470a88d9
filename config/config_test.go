package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, secrets map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
	}
	t.Setenv("SECRETS_DIR", dir)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "fridgechef_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("REGENERATE_RATE_LIMIT", "3")
	t.Setenv("REGENERATE_RATE_WINDOW", "15m")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	writeSecrets(t, map[string]string{
		"db_password": "postpass",
		"jwt_secret":  "test-jwt-secret",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "6543", cfg.DBPort)
	assert.Equal(t, "fridgechef_test", cfg.DBName)
	assert.Equal(t, "postpass", cfg.DBPassword)
	assert.Equal(t, "test-jwt-secret", cfg.JWTSecret)
	assert.Equal(t, "", cfg.RedisPassword)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, 3, cfg.RegenerateRateLimit)
	assert.Equal(t, 15*time.Minute, cfg.RegenerateRateWindow)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.DSN(), "host=db.internal port=6543")
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	writeSecrets(t, map[string]string{
		"db_password": "postpass",
		"jwt_secret":  "dev-secret",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 10, cfg.RegenerateRateLimit)
	assert.Equal(t, time.Hour, cfg.RegenerateRateWindow)
	assert.Equal(t, 30*time.Second, cfg.GenerationLockTTL)
	assert.Equal(t, time.Hour, cfg.ImageURLTTL)
}

func TestLoadConfigCIUsesEnvironmentSecrets(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("TEST_DB_PASSWORD", "ci-pass")
	t.Setenv("TEST_JWT_SECRET", "ci-jwt")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Env)
	assert.Equal(t, "ci-pass", cfg.DBPassword)
	assert.Equal(t, "ci-jwt", cfg.JWTSecret)
}

func TestLoadConfigMissingSecrets(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	t.Setenv("SECRETS_DIR", t.TempDir())

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db_password secret is required")
	assert.Contains(t, err.Error(), "jwt_secret secret is required")
}

func TestValidateConfigSQLiteSkipsDBPassword(t *testing.T) {
	cfg := &Config{
		Env:                  Development,
		DBDriver:             "sqlite",
		SQLitePath:           "local.db",
		JWTSecret:            "secret",
		RegenerateRateLimit:  1,
		RegenerateRateWindow: time.Minute,
		GenerationLockTTL:    time.Second,
	}
	assert.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, "local.db", cfg.DSN())

	cfg.DBDriver = "mysql"
	err := ValidateConfig(cfg)
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "DB_DRIVER", verrs[0].Field)
}
