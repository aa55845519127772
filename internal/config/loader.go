package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "skillbridge.yaml"

// DefaultEnvFile is the dotenv file merged into the process environment.
const DefaultEnvFile = ".env"

// ErrMissingAPIKey is returned outside production when no provider key is set.
var ErrMissingAPIKey = errors.New("groq.api_key is required (set GROQ_API_KEY)")

// Load returns a Config using the hierarchy: defaults < YAML < .env < ENV.
// Both files are optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile, DefaultEnvFile)
}

// LoadFrom returns a Config loaded from the given YAML and dotenv paths using
// the hierarchy: defaults < YAML < .env < ENV. Variables already present in
// the process environment win over the dotenv file.
func LoadFrom(yamlPath, envPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	if err := loadDotEnv(envPath); err != nil {
		return nil, fmt.Errorf("config dotenv: %w", err)
	}

	loadEnv(&cfg)
	applyDerived(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadDotEnv merges a dotenv file into the process environment without
// overriding variables that are already set.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Port, "SKILLBRIDGE_PORT")
	setString(&cfg.Server.Environment, "NODE_ENV")
	setString(&cfg.Server.Environment, "APP_ENV")
	setStrings(&cfg.Server.CORSOrigins, "CORS_ORIGINS")
	setInt64(&cfg.Server.MaxBodyBytes, "SKILLBRIDGE_MAX_BODY_BYTES")
	setDuration(&cfg.Server.WriteTimeout, "SKILLBRIDGE_WRITE_TIMEOUT")
	setDuration(&cfg.Server.ShutdownTimeout, "SKILLBRIDGE_SHUTDOWN_TIMEOUT")

	if v := strings.TrimSpace(os.Getenv("FRONTEND_URL")); v != "" && !slices.Contains(cfg.Server.CORSOrigins, v) {
		cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, v)
	}

	setString(&cfg.Groq.APIKey, "GROQ_API_KEY")
	setString(&cfg.Groq.BaseURL, "GROQ_BASE_URL")
	setStrings(&cfg.Groq.Models, "GROQ_MODELS")
	setString(&cfg.Groq.RecommendedModel, "GROQ_RECOMMENDED_MODEL")
	setFloat64(&cfg.Groq.Temperature, "SKILLBRIDGE_TEMPERATURE")
	setFloat64(&cfg.Groq.TopP, "SKILLBRIDGE_TOP_P")
	setInt(&cfg.Groq.MaxTokens, "SKILLBRIDGE_MAX_TOKENS")
	setDuration(&cfg.Groq.AttemptTimeout, "SKILLBRIDGE_ATTEMPT_TIMEOUT")
	setInt(&cfg.Groq.ProbeModels, "SKILLBRIDGE_PROBE_MODELS")

	setString(&cfg.Logging.Level, "SKILLBRIDGE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "SKILLBRIDGE_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "SKILLBRIDGE_LOG_ASYNC")

	setDuration(&cfg.Idempotency.TTL, "SKILLBRIDGE_IDEMPOTENCY_TTL")
	setInt64(&cfg.Idempotency.MaxSizeMB, "SKILLBRIDGE_IDEMPOTENCY_MAX_SIZE_MB")

	setString(&cfg.OTel.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setBool(&cfg.OTel.Insecure, "OTEL_EXPORTER_OTLP_INSECURE")
	setString(&cfg.OTel.ServiceName, "OTEL_SERVICE_NAME")
}

// applyDerived fills values that depend on other settings. The recommended
// model must be one of the configured models, else the first model is used.
func applyDerived(cfg *Config) {
	if len(cfg.Groq.Models) > 0 && !slices.Contains(cfg.Groq.Models, cfg.Groq.RecommendedModel) {
		cfg.Groq.RecommendedModel = cfg.Groq.Models[0]
	}
}

// validate checks that required fields are set. A missing provider key is
// fatal only outside production; deployed instances start and report it
// through the health endpoint.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	switch cfg.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("server.environment must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Server.Environment)
	}
	if cfg.Server.MaxBodyBytes < 1 {
		return errors.New("server.max_body_bytes must be >= 1")
	}
	if len(cfg.Groq.Models) == 0 {
		return errors.New("groq.models must list at least one model")
	}
	if cfg.Groq.MaxTokens < 1 {
		return errors.New("groq.max_tokens must be >= 1")
	}
	if cfg.Groq.ProbeModels < 1 {
		return errors.New("groq.probe_models must be >= 1")
	}
	if cfg.Groq.AttemptTimeout < 0 {
		return errors.New("groq.attempt_timeout must be >= 0")
	}
	if cfg.Idempotency.MaxSizeMB < 1 {
		return errors.New("idempotency.max_size_mb must be >= 1")
	}
	if cfg.Groq.APIKey == "" && !cfg.Server.IsProduction() {
		return ErrMissingAPIKey
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setStrings parses a comma-separated list, ignoring blank entries.
func setStrings(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
