package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	JWT     JWTConfig
	CORS    CORSConfig
	S3      S3Config
	Email   EmailConfig
	Invoice InvoiceConfig
	Fault   FaultConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// JWTConfig holds settings for verifying bearer tokens issued by the auth provider.
type JWTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
	Issuer  string `mapstructure:"issuer"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// S3Config holds AWS S3 settings for the rendered-document archive.
type S3Config struct {
	ArchiveEnabled bool   `mapstructure:"archive_enabled"`
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	PresignExpiry  int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds invoice delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// InvoiceConfig holds invoice rendering settings.
type InvoiceConfig struct {
	DefaultFormat string `mapstructure:"default_format"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	MaxItems      int    `mapstructure:"max_items"`
}

// FaultConfig enables deliberate failures of archive and delivery steps, for
// exercising client error handling. Rate is a probability in [0,1].
type FaultConfig struct {
	Rate float64 `mapstructure:"rate"`
}

// Load reads configuration from environment variables with the GSTDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// JWT defaults
	v.SetDefault("jwt.enabled", false)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "gstdesk")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// S3 defaults
	v.SetDefault("s3.archive_enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "gstdesk-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "invoices@gstdesk.in")
	v.SetDefault("email.from_name", "GSTDesk Invoicing")

	// Invoice defaults
	v.SetDefault("invoice.default_format", "html")
	v.SetDefault("invoice.key_prefix", "invoices")
	v.SetDefault("invoice.max_items", 500)

	// Fault injection defaults
	v.SetDefault("fault.rate", 0.0)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "GSTDESK_SERVER_PORT",
		"server.read_timeout":    "GSTDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "GSTDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":     "GSTDESK_SERVER_ENVIRONMENT",
		"log.level":              "GSTDESK_LOG_LEVEL",
		"log.format":             "GSTDESK_LOG_FORMAT",
		"jwt.enabled":            "GSTDESK_JWT_ENABLED",
		"jwt.secret":             "GSTDESK_JWT_SECRET",
		"jwt.issuer":             "GSTDESK_JWT_ISSUER",
		"cors.allowed_origins":   "GSTDESK_CORS_ALLOWED_ORIGINS",
		"s3.archive_enabled":     "GSTDESK_S3_ARCHIVE_ENABLED",
		"s3.region":              "GSTDESK_S3_REGION",
		"s3.bucket":              "GSTDESK_S3_BUCKET",
		"s3.endpoint":            "GSTDESK_S3_ENDPOINT",
		"s3.access_key":          "GSTDESK_S3_ACCESS_KEY",
		"s3.secret_key":          "GSTDESK_S3_SECRET_KEY",
		"s3.presign_expiry":      "GSTDESK_S3_PRESIGN_EXPIRY",
		"email.provider":         "GSTDESK_EMAIL_PROVIDER",
		"email.region":           "GSTDESK_EMAIL_REGION",
		"email.from_address":     "GSTDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":        "GSTDESK_EMAIL_FROM_NAME",
		"invoice.default_format": "GSTDESK_INVOICE_DEFAULT_FORMAT",
		"invoice.key_prefix":     "GSTDESK_INVOICE_KEY_PREFIX",
		"invoice.max_items":      "GSTDESK_INVOICE_MAX_ITEMS",
		"fault.rate":             "GSTDESK_FAULT_RATE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.JWT = JWTConfig{
		Enabled: v.GetBool("jwt.enabled"),
		Secret:  v.GetString("jwt.secret"),
		Issuer:  v.GetString("jwt.issuer"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.S3 = S3Config{
		ArchiveEnabled: v.GetBool("s3.archive_enabled"),
		Region:         v.GetString("s3.region"),
		Bucket:         v.GetString("s3.bucket"),
		Endpoint:       v.GetString("s3.endpoint"),
		AccessKey:      v.GetString("s3.access_key"),
		SecretKey:      v.GetString("s3.secret_key"),
		PresignExpiry:  v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Invoice = InvoiceConfig{
		DefaultFormat: v.GetString("invoice.default_format"),
		KeyPrefix:     v.GetString("invoice.key_prefix"),
		MaxItems:      v.GetInt("invoice.max_items"),
	}
	cfg.Fault = FaultConfig{
		Rate: v.GetFloat64("fault.rate"),
	}

	return cfg, nil
}
