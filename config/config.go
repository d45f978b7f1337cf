package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Cart     CartConfig
	Vault    VaultConfig
	Billing  BillingConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// CartConfig controls cart ownership and lifecycle rules.
type CartConfig struct {
	MaxItems       int
	SessionTTLDays int
}

// VaultConfig holds the gate-code encryption material. Key management is
// external; only the derived key ever lives in memory.
type VaultConfig struct {
	Secret string
	Salt   string
}

// BillingConfig holds platform commission settings.
type BillingConfig struct {
	PlatformFeeRate float64
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "booking_engine_db"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Cart: CartConfig{
			MaxItems:       getEnvAsInt("CART_MAX_ITEMS", 3),
			SessionTTLDays: getEnvAsInt("CART_SESSION_TTL_DAYS", 14),
		},
		Vault: VaultConfig{
			Secret: getEnv("GATE_CODE_SECRET", "change-this-gate-code-secret"),
			Salt:   getEnv("GATE_CODE_SALT", "booking-engine-gate-codes"),
		},
		Billing: BillingConfig{
			PlatformFeeRate: getEnvAsFloat("PLATFORM_FEE_RATE", 0.15),
		},
	}
}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
