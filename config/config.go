package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultSecretsDir = "/run/secrets"

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerHost string `env:"SERVER_HOST" env-default:"0.0.0.0"`
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`

	// CORSOrigins is a comma-separated allow list for browser clients
	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://localhost:19006"`

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver   string `env:"DB_DRIVER" env-default:"postgres"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBName     string `env:"DB_NAME" env-default:"fridgechef"`
	DBSSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"fridgechef.db"`
	DBPassword string

	// Redis configuration. RedisURL takes precedence over host/port when set.
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisURL      string `env:"REDIS_URL"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisPassword string

	// JWT configuration
	JWTSecret string

	// Recipe images
	S3BucketName string        `env:"S3_BUCKET_NAME"`
	AWSRegion    string        `env:"AWS_REGION" env-default:"ap-northeast-2"`
	ImageURLTTL  time.Duration `env:"IMAGE_URL_TTL" env-default:"1h"`

	// Recommendation engine
	RegenerateRateLimit  int           `env:"REGENERATE_RATE_LIMIT" env-default:"10"`
	RegenerateRateWindow time.Duration `env:"REGENERATE_RATE_WINDOW" env-default:"1h"`
	GenerationLockTTL    time.Duration `env:"GENERATION_LOCK_TTL" env-default:"30s"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

// LoadConfig reads non-sensitive settings from the environment and secrets from
// either Docker secrets or (in CI) environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{Env: GetEnvironment()}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch cfg.Env {
	case CI:
		loadCISecrets(cfg)
	case Development, Test, Production:
		loadDockerSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", cfg.Env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCISecrets loads secrets for CI using ONLY GitHub Actions secrets
func loadCISecrets(cfg *Config) {
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
}

func loadDockerSecrets(cfg *Config) {
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
}

// DSN returns the gorm data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// ServerAddr returns host:port for the HTTP listener
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
