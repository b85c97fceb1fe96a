// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Security  SecurityConfig
	Session   SessionConfig
	Cart      CartConfig
	Catalog   CatalogConfig
	Payment   PaymentConfig
	Messaging MessagingConfig
	Email     EmailConfig
	Logging   LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// SessionConfig controls the signed cart session cookie
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// CartConfig controls where cart snapshots live
type CartConfig struct {
	Storage    string // memory or redis
	StorageKey string
	TTL        time.Duration
}

// CatalogConfig selects the catalog source
type CatalogConfig struct {
	Source string // memory or postgres
}

// PaymentConfig contains the CloudPayments widget configuration
type PaymentConfig struct {
	PublicID        string
	APISecret       string
	ScriptURL       string
	ScriptElementID string
	ChargeURL       string
	Currency        string
	Description     string
	Skin            string
	Timeout         time.Duration
}

// MessagingConfig contains RabbitMQ configuration for order events
type MessagingConfig struct {
	RabbitMQURL string
	OrderQueue  string
}

// EmailConfig contains SMTP configuration for order confirmations
type EmailConfig struct {
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8080"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "storefront_db"),
			User:         getEnv("DB_USER", "storefront_user"),
			Password:     getEnv("DB_PASSWORD", "storefront_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", true),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "change-me-storefront-session-secret-key"),
			TTL:        getEnvAsDuration("SESSION_TTL", 30*24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE_NAME", "cart_session"),
			Secure:     getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Cart: CartConfig{
			Storage:    getEnv("CART_STORAGE", "redis"),
			StorageKey: getEnv("CART_STORAGE_KEY", "cart-storage"),
			TTL:        getEnvAsDuration("CART_TTL", 30*24*time.Hour),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", "memory"),
		},
		Payment: PaymentConfig{
			PublicID:        getEnv("CLOUDPAYMENTS_PUBLIC_ID", "test_api_00000000000000000000002"),
			APISecret:       getEnv("CLOUDPAYMENTS_API_SECRET", ""),
			ScriptURL:       getEnv("CLOUDPAYMENTS_SCRIPT_URL", "https://widget.cloudpayments.ru/bundles/cloudpayments.js"),
			ScriptElementID: getEnv("CLOUDPAYMENTS_SCRIPT_ID", "cloudpayments-script"),
			ChargeURL:       getEnv("CLOUDPAYMENTS_CHARGE_URL", "https://api.cloudpayments.ru/payments/charge"),
			Currency:        getEnv("PAYMENT_CURRENCY", "RUB"),
			Description:     getEnv("PAYMENT_DESCRIPTION", "Order payment"),
			Skin:            getEnv("CLOUDPAYMENTS_SKIN", "classic"),
			Timeout:         getEnvAsDuration("PAYMENT_TIMEOUT", 30*time.Second),
		},
		Messaging: MessagingConfig{
			RabbitMQURL: getEnv("RABBITMQ_URL", ""),
			OrderQueue:  getEnv("RABBITMQ_ORDER_QUEUE", "storefront.orders"),
		},
		Email: EmailConfig{
			SMTPHost:  getEnv("SMTP_HOST", ""),
			SMTPPort:  getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:  getEnv("SMTP_USER", ""),
			SMTPPass:  getEnv("SMTP_PASS", ""),
			FromEmail: getEnv("FROM_EMAIL", "noreply@example.com"),
			FromName:  getEnv("FROM_NAME", "Storefront"),
			Timeout:   getEnvAsDuration("SMTP_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	switch c.Cart.Storage {
	case "memory":
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("CART_STORAGE=redis requires REDIS_ENABLED")
		}
	default:
		return fmt.Errorf("unsupported CART_STORAGE: %s", c.Cart.Storage)
	}
	if c.Cart.StorageKey == "" {
		return fmt.Errorf("CART_STORAGE_KEY is required")
	}

	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	switch c.Catalog.Source {
	case "memory":
	case "postgres":
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("CATALOG_SOURCE=postgres requires DB_HOST, DB_NAME and DB_USER")
		}
	default:
		return fmt.Errorf("unsupported CATALOG_SOURCE: %s", c.Catalog.Source)
	}

	if c.Payment.ScriptURL == "" || c.Payment.ChargeURL == "" {
		return fmt.Errorf("CLOUDPAYMENTS_SCRIPT_URL and CLOUDPAYMENTS_CHARGE_URL are required")
	}
	if c.Payment.Currency == "" {
		return fmt.Errorf("PAYMENT_CURRENCY is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
