// Package config provides hierarchical configuration loading for SkillBridge.
// Precedence: defaults < YAML file < .env file < environment variables.
package config

import "time"

// Environment names accepted in Server.Environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all runtime configuration for the SkillBridge API.
type Config struct {
	Server      Server      `yaml:"server"`
	Groq        Groq        `yaml:"groq"`
	Logging     Logging     `yaml:"logging"`
	Idempotency Idempotency `yaml:"idempotency"`
	OTel        OTel        `yaml:"otel"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port              string        `yaml:"port"`
	Environment       string        `yaml:"environment"` // "development" | "production"
	CORSOrigins       []string      `yaml:"cors_origins"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"` // 0 = unbounded; generation can be slow
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// IsProduction reports whether the server runs as a deployed instance.
func (s Server) IsProduction() bool { return s.Environment == EnvProduction }

// IsDevelopment reports whether internal error detail may be exposed.
func (s Server) IsDevelopment() bool { return s.Environment == EnvDevelopment }

// Groq holds text-generation provider configuration.
type Groq struct {
	BaseURL          string        `yaml:"base_url"`
	APIKey           string        `yaml:"api_key"`
	Models           []string      `yaml:"models"` // tried in order
	RecommendedModel string        `yaml:"recommended_model"`
	Temperature      float64       `yaml:"temperature"`
	TopP             float64       `yaml:"top_p"`
	MaxTokens        int           `yaml:"max_tokens"`
	AttemptTimeout   time.Duration `yaml:"attempt_timeout"` // 0 = no per-attempt bound
	ProbeModels      int           `yaml:"probe_models"`    // how many models the probe tries
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Idempotency holds replay-cache configuration for mutating endpoints.
type Idempotency struct {
	TTL       time.Duration `yaml:"ttl"`
	MaxSizeMB int64         `yaml:"max_size_mb"`
}

// OTel holds OpenTelemetry exporter configuration. An empty endpoint keeps
// the global no-op providers.
type OTel struct {
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// DefaultModels is the provider model list, most capable first.
var DefaultModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.2-3b-preview",
	"llama-3.2-1b-preview",
	"gemma2-9b-it",
	"llama-3.1-8b-instant",
	"llama-3.2-90b-vision-preview",
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:        "5000",
			Environment: EnvDevelopment,
			CORSOrigins: []string{
				"http://localhost:5173",
				"https://skillbridge-ai.vercel.app",
				"https://skillbridge-app.vercel.app",
			},
			MaxBodyBytes:      1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      0,
			ShutdownTimeout:   10 * time.Second,
		},
		Groq: Groq{
			BaseURL:          "https://api.groq.com/openai/v1",
			Models:           append([]string(nil), DefaultModels...),
			RecommendedModel: "llama-3.2-3b-preview",
			Temperature:      0.8,
			TopP:             0.9,
			MaxTokens:        4000,
			ProbeModels:      2,
		},
		Logging: Logging{
			Level:   "info",
			Service: "skillbridge-api",
		},
		Idempotency: Idempotency{
			TTL:       10 * time.Minute,
			MaxSizeMB: 32,
		},
		OTel: OTel{
			ServiceName: "skillbridge-api",
		},
	}
}
