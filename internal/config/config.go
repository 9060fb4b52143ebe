package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	Reasoner  ReasonerConfig
	Evaluator EvaluatorConfig
	CORS      CORSConfig
	Auth      AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// AuthConfig holds the single configured operator account.
// PasswordHash is a bcrypt hash; Password is a plaintext fallback for
// local development only.
type AuthConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
	Password     string `mapstructure:"password"`
}

// S3Config holds AWS S3 settings for the policy document library.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReasonerConfig holds settings for the external reasoning service.
type ReasonerConfig struct {
	Provider     string  `mapstructure:"provider"`
	APIKey       string  `mapstructure:"api_key"`
	DefaultModel string  `mapstructure:"default_model"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	TimeoutSecs  int     `mapstructure:"timeout_secs"`
}

// EvaluatorConfig holds response validation settings.
type EvaluatorConfig struct {
	// StrictDecision rejects decision literals outside the three the wire
	// schema requests instead of passing them through.
	StrictDecision bool `mapstructure:"strict_decision"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the CLAIMLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "claimlens")
	v.SetDefault("db.password", "claimlens_secret")
	v.SetDefault("db.name", "claimlens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "claimlens")

	// Operator account defaults
	v.SetDefault("auth.email", "admin@claimlens.local")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.password", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "claimlens-policies")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Reasoner defaults
	v.SetDefault("reasoner.provider", "openai")
	v.SetDefault("reasoner.api_key", "")
	v.SetDefault("reasoner.default_model", "gpt-4o")
	v.SetDefault("reasoner.temperature", 0.1)
	v.SetDefault("reasoner.max_tokens", 2048)
	v.SetDefault("reasoner.timeout_secs", 120)

	// Evaluator defaults
	v.SetDefault("evaluator.strict_decision", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "CLAIMLENS_SERVER_PORT",
		"server.read_timeout":       "CLAIMLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "CLAIMLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":        "CLAIMLENS_SERVER_ENVIRONMENT",
		"db.host":                   "CLAIMLENS_DB_HOST",
		"db.port":                   "CLAIMLENS_DB_PORT",
		"db.user":                   "CLAIMLENS_DB_USER",
		"db.password":               "CLAIMLENS_DB_PASSWORD",
		"db.name":                   "CLAIMLENS_DB_NAME",
		"db.sslmode":                "CLAIMLENS_DB_SSLMODE",
		"db.max_open":               "CLAIMLENS_DB_MAX_OPEN",
		"db.max_idle":               "CLAIMLENS_DB_MAX_IDLE",
		"jwt.secret":                "CLAIMLENS_JWT_SECRET",
		"jwt.access_expiry":         "CLAIMLENS_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":        "CLAIMLENS_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                "CLAIMLENS_JWT_ISSUER",
		"auth.email":                "CLAIMLENS_AUTH_EMAIL",
		"auth.password_hash":        "CLAIMLENS_AUTH_PASSWORD_HASH",
		"auth.password":             "CLAIMLENS_AUTH_PASSWORD",
		"s3.region":                 "CLAIMLENS_S3_REGION",
		"s3.bucket":                 "CLAIMLENS_S3_BUCKET",
		"s3.endpoint":               "CLAIMLENS_S3_ENDPOINT",
		"s3.access_key":             "CLAIMLENS_S3_ACCESS_KEY",
		"s3.secret_key":             "CLAIMLENS_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "CLAIMLENS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "CLAIMLENS_S3_PRESIGN_EXPIRY",
		"log.level":                 "CLAIMLENS_LOG_LEVEL",
		"log.format":                "CLAIMLENS_LOG_FORMAT",
		"cors.allowed_origins":      "CLAIMLENS_CORS_ALLOWED_ORIGINS",
		"reasoner.provider":         "CLAIMLENS_REASONER_PROVIDER",
		"reasoner.api_key":          "CLAIMLENS_REASONER_API_KEY",
		"reasoner.default_model":    "CLAIMLENS_REASONER_DEFAULT_MODEL",
		"reasoner.temperature":      "CLAIMLENS_REASONER_TEMPERATURE",
		"reasoner.max_tokens":       "CLAIMLENS_REASONER_MAX_TOKENS",
		"reasoner.timeout_secs":     "CLAIMLENS_REASONER_TIMEOUT_SECS",
		"evaluator.strict_decision": "CLAIMLENS_EVALUATOR_STRICT_DECISION",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAIMLENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAIMLENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		Email:        v.GetString("auth.email"),
		PasswordHash: v.GetString("auth.password_hash"),
		Password:     v.GetString("auth.password"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Reasoner = ReasonerConfig{
		Provider:     v.GetString("reasoner.provider"),
		APIKey:       v.GetString("reasoner.api_key"),
		DefaultModel: v.GetString("reasoner.default_model"),
		Temperature:  v.GetFloat64("reasoner.temperature"),
		MaxTokens:    v.GetInt("reasoner.max_tokens"),
		TimeoutSecs:  v.GetInt("reasoner.timeout_secs"),
	}

	cfg.Evaluator = EvaluatorConfig{
		StrictDecision: v.GetBool("evaluator.strict_decision"),
	}

	return cfg, nil
}
