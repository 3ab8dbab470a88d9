package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in a Config
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// secretSource names where a sensitive value is expected to come from, for error messages
func secretSource(env Environment, secret, envVar string) string {
	if env.UsesDockerSecrets() {
		return fmt.Sprintf("%s secret is required", secret)
	}
	return fmt.Sprintf("%s environment variable is required in CI environment", envVar)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{"DB_HOST", "required for postgres driver"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "required for postgres driver"})
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"db_password", secretSource(cfg.Env, "db_password", "TEST_DB_PASSWORD")})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "required for sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"jwt_secret", secretSource(cfg.Env, "jwt_secret", "TEST_JWT_SECRET")})
	}
	if cfg.RegenerateRateLimit <= 0 {
		errs = append(errs, ValidationError{"REGENERATE_RATE_LIMIT", "must be positive"})
	}
	if cfg.RegenerateRateWindow <= 0 {
		errs = append(errs, ValidationError{"REGENERATE_RATE_WINDOW", "must be positive"})
	}
	if cfg.GenerationLockTTL <= 0 {
		errs = append(errs, ValidationError{"GENERATION_LOCK_TTL", "must be positive"})
	}
	if cfg.S3BucketName != "" && cfg.ImageURLTTL <= 0 {
		errs = append(errs, ValidationError{"IMAGE_URL_TTL", "must be positive when S3_BUCKET_NAME is set"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
